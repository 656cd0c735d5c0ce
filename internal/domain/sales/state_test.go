package sales

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaleState_IsValid(t *testing.T) {
	tests := []struct {
		state   SaleState
		isValid bool
	}{
		{StateDraft, true},
		{StateApproved, true},
		{StatePartiallyPayed, true},
		{StatePayed, true},
		{StateCancelled, true},
		{SaleState("INVALID"), false},
		{SaleState(""), false},
	}

	for _, tt := range tests {
		t.Run(string(tt.state), func(t *testing.T) {
			assert.Equal(t, tt.isValid, tt.state.IsValid())
		})
	}
}

func TestNext_LegalTransitions(t *testing.T) {
	tests := []struct {
		from  SaleState
		event SaleEvent
		to    SaleState
	}{
		{StateDraft, EventApprove, StateApproved},
		{StateApproved, EventPay, StatePayed},
		{StateApproved, EventPartiallyPay, StatePartiallyPayed},
		{StateApproved, EventCancel, StateCancelled},
		{StatePayed, EventCancel, StateCancelled},
		{StatePartiallyPayed, EventCancel, StateCancelled},
		{StatePartiallyPayed, EventPay, StatePayed},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"+"+string(tt.event), func(t *testing.T) {
			got, err := Next(tt.from, tt.event)
			require.NoError(t, err)
			assert.Equal(t, tt.to, got)
		})
	}
}

func TestNext_IllegalTransitions(t *testing.T) {
	states := []SaleState{StateDraft, StateApproved, StatePartiallyPayed, StatePayed, StateCancelled}
	events := []SaleEvent{EventApprove, EventCancel, EventPartiallyPay, EventPay}

	legal := map[SaleState]map[SaleEvent]bool{
		StateDraft:          {EventApprove: true},
		StateApproved:       {EventPay: true, EventPartiallyPay: true, EventCancel: true},
		StatePartiallyPayed: {EventPay: true, EventCancel: true},
		StatePayed:          {EventCancel: true},
	}

	for _, from := range states {
		for _, event := range events {
			if legal[from][event] {
				continue
			}
			t.Run(string(from)+"+"+string(event), func(t *testing.T) {
				got, err := Next(from, event)
				require.Error(t, err)

				var illegal *IllegalTransitionError
				require.True(t, errors.As(err, &illegal))
				assert.Equal(t, from, illegal.From)
				assert.Equal(t, event, illegal.Event)
				// the state must be left untouched
				assert.Equal(t, from, got)
			})
		}
	}
}

func TestIllegalTransitionError_NamesBothSides(t *testing.T) {
	_, err := Next(StateCancelled, EventPay)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PAY")
	assert.Contains(t, err.Error(), "CANCELLED")
}
