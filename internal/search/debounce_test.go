package search

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDebouncerOnlyNewestTokenFires(t *testing.T) {
	var d Debouncer

	t1 := d.Set("lr")
	t2 := d.Set("lr_")
	t3 := d.Set("lr_sched")

	_, ok := d.Fire(t1)
	require.False(t, ok, "superseded timer must not settle")
	_, ok = d.Fire(t2)
	require.False(t, ok)

	value, ok := d.Fire(t3)
	require.True(t, ok)
	require.Equal(t, "lr_sched", value)
}

func TestDebouncerFireIsRepeatable(t *testing.T) {
	var d Debouncer
	token := d.Set("loss")

	value, ok := d.Fire(token)
	require.True(t, ok)
	require.Equal(t, "loss", value)

	// No new keystroke arrived, the token is still the newest.
	_, ok = d.Fire(token)
	require.True(t, ok)
}

func TestDebouncerResetInvalidatesTimers(t *testing.T) {
	var d Debouncer
	token := d.Set("adam")
	d.Reset()

	_, ok := d.Fire(token)
	require.False(t, ok)
	require.Equal(t, "", d.Live())
}
