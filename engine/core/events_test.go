package core

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherFiresInRegistrationOrder(t *testing.T) {
	d := NewDispatcher[int]()
	var calls []string
	d.Register(func(v int) { calls = append(calls, "first") })
	d.Register(func(v int) { calls = append(calls, "second") })

	d.Fire(7)
	assert.Equal(t, []string{"first", "second"}, calls)
}

func TestDispatcherUnregister(t *testing.T) {
	d := NewDispatcher[string]()
	count := 0
	id := d.Register(func(string) { count++ })
	d.Register(func(string) { count += 10 })

	assert.True(t, d.Unregister(id))
	assert.False(t, d.Unregister(id))
	d.Fire("x")
	assert.Equal(t, 10, count)
	assert.Equal(t, 1, d.Len())
}

func TestDispatcherIgnoresNilCallback(t *testing.T) {
	d := NewDispatcher[int]()
	assert.Equal(t, ListenerID(0), d.Register(nil))
	assert.Equal(t, 0, d.Len())
}

func TestDispatcherCallbackMayUnregister(t *testing.T) {
	d := NewDispatcher[int]()
	var id ListenerID
	fired := 0
	id = d.Register(func(int) {
		fired++
		d.Unregister(id)
	})

	d.Fire(1)
	d.Fire(2)
	assert.Equal(t, 1, fired)
}

func TestDispatchersSharingIDsNeverCollide(t *testing.T) {
	ids := new(atomic.Uint64)
	ints := NewDispatcherWithIDs[int](ids)
	strs := NewDispatcherWithIDs[string](ids)

	intID := ints.Register(func(int) {})
	strID := strs.Register(func(string) {})
	assert.NotEqual(t, intID, strID)

	assert.False(t, ints.Unregister(strID))
	assert.True(t, strs.Unregister(strID))
	assert.Equal(t, 1, ints.Len())
}
