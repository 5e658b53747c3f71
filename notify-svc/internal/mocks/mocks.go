// Package mocks holds a testify mock for the consumer's delivery sink.
package mocks

import (
	"foodcourt-ordering/notify-svc/internal/domain"

	"github.com/stretchr/testify/mock"
)

type testingT interface {
	mock.TestingT
	Cleanup(func())
}

type Deliverer struct{ mock.Mock }

func NewDeliverer(t testingT) *Deliverer {
	m := &Deliverer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *Deliverer) Deliver(event domain.OrderEvent) {
	m.Called(event)
}
