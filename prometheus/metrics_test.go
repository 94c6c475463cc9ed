package prometheus

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestTrackDBOperationObservesDuration(t *testing.T) {
	TrackDBOperation("query")(time.Now())
	TrackDBOperation("insert")(time.Now())

	// One histogram child per operation label.
	assert.GreaterOrEqual(t, testutil.CollectAndCount(DBOperationDuration), 2)
}

func TestRecordErrorIncrementsTypedCounter(t *testing.T) {
	before := testutil.ToFloat64(ErrorCounter.WithLabelValues("validation"))
	RecordError("validation")
	after := testutil.ToFloat64(ErrorCounter.WithLabelValues("validation"))
	assert.Equal(t, before+1, after)
}
