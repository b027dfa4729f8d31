package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordHTTPRequest(t *testing.T) {
	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/videos", "200"))

	RecordHTTPRequest("GET", "/api/v1/videos", 200, 15*time.Millisecond)

	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/videos", "200"))
	assert.Equal(t, before+1, after)
}

func TestRecordTokenRotation(t *testing.T) {
	success := testutil.ToFloat64(TokenRotations.WithLabelValues("success"))
	rejected := testutil.ToFloat64(TokenRotations.WithLabelValues("rejected"))

	RecordTokenRotation(true)
	RecordTokenRotation(false)
	RecordTokenRotation(false)

	assert.Equal(t, success+1, testutil.ToFloat64(TokenRotations.WithLabelValues("success")))
	assert.Equal(t, rejected+2, testutil.ToFloat64(TokenRotations.WithLabelValues("rejected")))
}

func TestRecordEdgeToggle(t *testing.T) {
	before := testutil.ToFloat64(EdgeToggles.WithLabelValues("like", "true"))

	RecordEdgeToggle("like", true)

	assert.Equal(t, before+1, testutil.ToFloat64(EdgeToggles.WithLabelValues("like", "true")))
}

func TestRecordMediaUpload(t *testing.T) {
	RecordMediaUpload(time.Second, nil)
	RecordMediaUpload(time.Second, errors.New("boom"))

	assert.Equal(t, 2, testutil.CollectAndCount(MediaUploadDuration))
}
