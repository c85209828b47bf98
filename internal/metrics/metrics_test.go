package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObservePlan(t *testing.T) {
	RegisterDefault()
	RegisterDefault()

	before := testutil.ToFloat64(Plans.WithLabelValues("time", "true"))
	ObservePlan("time", true, 5)
	assert.Equal(t, before+1, testutil.ToFloat64(Plans.WithLabelValues("time", "true")))
}
