package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/connect-abdulbasit/Dental-Inventory-Management-System-sub000/internal/domain/apperr"
)

func TestNumberUnmarshal(t *testing.T) {
	tests := []struct {
		input   string
		want    int
		wantErr bool
	}{
		{`{"n": 5}`, 5, false},
		{`{"n": "5"}`, 5, false},
		{`{"n": " 12 "}`, 12, false},
		{`{"n": -3}`, -3, false},
		{`{"n": null}`, 0, false},
		{`{"n": 2.5}`, 0, true},
		{`{"n": "abc"}`, 0, true},
		{`{"n": ""}`, 0, true},
		{`{"n": true}`, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			var v struct {
				N Number `json:"n"`
			}
			err := json.Unmarshal([]byte(tt.input), &v)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, v.N.Int())
		})
	}
}

func TestOptionalInt(t *testing.T) {
	assert.Nil(t, optionalInt(nil))

	n := Number(7)
	assert.Equal(t, 7, *optionalInt(&n))
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{apperr.InvalidArgument("x"), http.StatusBadRequest},
		{apperr.NotFound("x"), http.StatusNotFound},
		{apperr.Conflict("x"), http.StatusConflict},
		{apperr.InsufficientStock("Gloves", 1, 2), http.StatusUnprocessableEntity},
		{apperr.InsufficientInventory(nil), http.StatusUnprocessableEntity},
		{apperr.Busy(errors.New("deadline")), http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(apperr.KindOf(tt.err)), tt.err.Error())
	}
}
