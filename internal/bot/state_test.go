package bot

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStateStoreGetCreates(t *testing.T) {
	s := newStateStore()

	st := s.get(42)
	assert.Equal(t, stepNone, st.Step)

	st.Step = stepDate
	st.Draft.SpecialistID = "spec-1"

	again := s.get(42)
	assert.Equal(t, stepDate, again.Step)
	assert.Equal(t, "spec-1", again.Draft.SpecialistID)
}

func TestStateStoreIsolatesUsers(t *testing.T) {
	s := newStateStore()

	s.get(1).Step = stepConfirm
	assert.Equal(t, stepNone, s.get(2).Step)
}

func TestStateStoreReset(t *testing.T) {
	s := newStateStore()

	s.get(42).Step = stepConfirm
	s.reset(42)
	assert.Equal(t, stepNone, s.get(42).Step)
}

func TestStateStoreConcurrentAccess(t *testing.T) {
	s := newStateStore()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id int64) {
			defer wg.Done()
			s.get(id).Step = stepSlot
			s.reset(id)
			s.get(id)
		}(int64(i % 5))
	}
	wg.Wait()
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		in   string
		want string
		ok   bool
	}{
		{in: "+7 999 123-45-67", want: "+79991234567", ok: true},
		{in: "8 (999) 123 45 67", want: "89991234567", ok: true},
		{in: "9991234567", want: "9991234567", ok: true},
		{in: "12345", ok: false},
		{in: "abc", ok: false},
		{in: "+1234567890123456", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := normalizePhone(tt.in)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
