package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorders(t *testing.T) {
	before := testutil.ToFloat64(jaapCompletions)
	RecordJaapCompletion()
	assert.Equal(t, before+1, testutil.ToFloat64(jaapCompletions))

	RecordReminderSent("jaap_reminder", 3)
	assert.Equal(t, 3.0, testutil.ToFloat64(reminderRuns.WithLabelValues("jaap_reminder")))

	RecordAIAnswer("guru", "streamed")
	assert.Equal(t, 1.0, testutil.ToFloat64(aiAnswers.WithLabelValues("guru", "streamed")))

	RecordHTTPRequest("GET", "/posts", 200, 10*time.Millisecond)
	assert.Equal(t, 1.0, testutil.ToFloat64(httpRequests.WithLabelValues("GET", "/posts", "200")))
}

func TestHandlerExposesRegistry(t *testing.T) {
	RecordJaapCompletion()
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ramotsav_jaap_malas_completed_total")
}
