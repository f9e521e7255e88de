package observability

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAuthEvent(t *testing.T) {
	success := testutil.ToFloat64(AuthEvents.WithLabelValues(EventLogin, OutcomeSuccess))
	failure := testutil.ToFloat64(AuthEvents.WithLabelValues(EventLogin, OutcomeFailure))

	RecordAuthEvent(EventLogin, nil)
	RecordAuthEvent(EventLogin, errors.New("bad password"))
	RecordAuthEvent(EventLogin, errors.New("bad password"))

	assert.Equal(t, success+1, testutil.ToFloat64(AuthEvents.WithLabelValues(EventLogin, OutcomeSuccess)))
	assert.Equal(t, failure+2, testutil.ToFloat64(AuthEvents.WithLabelValues(EventLogin, OutcomeFailure)))
}

func TestRegisterMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	RegisterMetrics(reg)
	RecordAuthEvent(EventLogout, nil)

	families, err := reg.Gather()
	require.NoError(t, err)

	names := map[string]bool{}
	for _, f := range families {
		names[f.GetName()] = true
	}
	assert.True(t, names["auth_events_total"])
}
