package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAggregateStatus(t *testing.T) {
	tests := []struct {
		name    string
		results []DeliveryResult
		want    AlertStatus
	}{
		{"no recipients", nil, AlertStatusPending},
		{"all delivered", []DeliveryResult{{Success: true}, {Success: true}}, AlertStatusSent},
		{"partial", []DeliveryResult{{Success: true}, {Success: false}}, AlertStatusFailed},
		{"none delivered", []DeliveryResult{{Success: false}}, AlertStatusFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AggregateStatus(tt.results))
		})
	}
}

func TestDispatchResult_Summary(t *testing.T) {
	res := &DispatchResult{Results: []DeliveryResult{
		{Phone: "+911", Success: true},
		{Phone: "+912", Success: false, Error: "boom"},
		{Phone: "+913", Success: true},
	}}

	assert.Equal(t, 2, res.Delivered())
	assert.Equal(t, "sent: 2/3", res.Summary())
}

func TestResource_IsLowStock(t *testing.T) {
	assert.True(t, (&Resource{Quantity: 5, Threshold: 5}).IsLowStock())
	assert.True(t, (&Resource{Quantity: 2, Threshold: 5}).IsLowStock())
	assert.False(t, (&Resource{Quantity: 8, Threshold: 5}).IsLowStock())
}
