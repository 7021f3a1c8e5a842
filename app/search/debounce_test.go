package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/CrestNiraj12/terminalfeed/app/schedule"
)

type recorder struct {
	got []string
}

func (r *recorder) emit(q string) { r.got = append(r.got, q) }

func newTestDebouncer() (*Debouncer, *schedule.Manual, *recorder) {
	m := schedule.NewManual()
	r := &recorder{}
	return NewDebouncer(m, DefaultQuietPeriod, r.emit), m, r
}

func TestDebouncer_TypingBurstEmitsOnlyFinalQuery(t *testing.T) {
	d, m, r := newTestDebouncer()

	for _, q := range []string{"c", "ca", "cat"} {
		d.Input(q)
		m.Advance(100 * time.Millisecond)
	}
	require.Empty(t, r.got, "nothing settles while typing continues")
	require.True(t, d.Pending())

	m.Advance(DefaultQuietPeriod)
	require.Equal(t, []string{"cat"}, r.got)
	require.False(t, d.Pending())
}

func TestDebouncer_EmptyQueryEmitsImmediately(t *testing.T) {
	d, m, r := newTestDebouncer()

	d.Input("dog")
	d.Input("   ")
	require.Equal(t, []string{""}, r.got, "blank input must bypass the quiet period")

	m.Advance(time.Second)
	require.Equal(t, []string{""}, r.got, "pending query must be cancelled by the clear")
}

func TestDebouncer_SubmitBypassesDelay(t *testing.T) {
	d, m, r := newTestDebouncer()

	d.Input("trav")
	d.Submit("  travel ")
	require.Equal(t, []string{"travel"}, r.got)

	m.Advance(time.Second)
	require.Equal(t, []string{"travel"}, r.got)
}

func TestDebouncer_BlankSubmitIsIgnored(t *testing.T) {
	d, m, r := newTestDebouncer()

	d.Input("trav")
	d.Submit("   ")
	require.Empty(t, r.got)
	require.True(t, d.Pending(), "blank submit must not cancel the pending query")

	m.Advance(time.Second)
	require.Equal(t, []string{"trav"}, r.got)
}

func TestDebouncer_ClearEmitsEmpty(t *testing.T) {
	d, _, r := newTestDebouncer()
	d.Input("x")
	d.Clear()
	require.Equal(t, []string{""}, r.got)
	require.False(t, d.Pending())
}

func TestDebouncer_StopCancelsPendingForever(t *testing.T) {
	d, m, r := newTestDebouncer()

	d.Input("food")
	d.Stop()
	m.Advance(time.Second)
	d.Input("more")
	d.Clear()
	m.Advance(time.Second)
	require.Empty(t, r.got)
	require.Zero(t, m.Pending())
}

func TestDebouncer_TrimsSettledQuery(t *testing.T) {
	d, m, r := newTestDebouncer()
	d.Input("  pets ")
	m.Advance(DefaultQuietPeriod)
	require.Equal(t, []string{"pets"}, r.got)
}

func TestDebouncer_DefaultsQuietPeriod(t *testing.T) {
	m := schedule.NewManual()
	r := &recorder{}
	d := NewDebouncer(m, 0, r.emit)

	d.Input("a")
	m.Advance(DefaultQuietPeriod - time.Millisecond)
	require.Empty(t, r.got)
	m.Advance(time.Millisecond)
	require.Equal(t, []string{"a"}, r.got)
}
