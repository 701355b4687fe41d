package route

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/worktrack/tracker-backend-go/internal/models"
)

func sampleAt(ts time.Time, lat, lon float64) models.LocationSample {
	return models.LocationSample{
		SubjectID: 1,
		Latitude:  lat,
		Longitude: lon,
		Timestamp: ts,
		SessionID: "session_test",
		Kind:      models.PointIntermediate,
	}
}

func TestClassifierFirstSampleIsUnknown(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), NewStateStore())

	cls := c.Classify(sampleAt(time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC), 55.75, 37.61))
	assert.Equal(t, models.MovementUnknown, cls.Movement)
	assert.Zero(t, cls.SpeedKmh)
}

func TestClassifierDwellAccumulation(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), NewStateStore())
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	// Same coordinate every minute. Dwell passes the 5 minute window only
	// after more than 300 accumulated seconds.
	c.Classify(sampleAt(base, 55.75, 37.61))
	for i := 1; i <= 5; i++ {
		cls := c.Classify(sampleAt(base.Add(time.Duration(i)*time.Minute), 55.75, 37.61))
		assert.Equal(t, models.MovementUnknown, cls.Movement, "minute %d", i)
	}

	cls := c.Classify(sampleAt(base.Add(6*time.Minute), 55.75, 37.61))
	assert.Equal(t, models.MovementStationary, cls.Movement)
	assert.False(t, cls.Alert)
}

func TestClassifierAlertFiresOncePerEpisode(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), NewStateStore())
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	c.Classify(sampleAt(base, 55.75, 37.61))

	var alerts int
	for i := 1; i <= 40; i++ {
		cls := c.Classify(sampleAt(base.Add(time.Duration(i)*time.Minute), 55.75, 37.61))
		if cls.Alert {
			alerts++
		}
	}
	assert.Equal(t, 1, alerts, "alert must fire exactly once per stationary episode")

	// Movement resets the episode; a new dwell raises a new alert.
	c.Classify(sampleAt(base.Add(41*time.Minute), 55.76, 37.61))
	alerts = 0
	for i := 42; i <= 82; i++ {
		cls := c.Classify(sampleAt(base.Add(time.Duration(i)*time.Minute), 55.76, 37.61))
		if cls.Alert {
			alerts++
		}
	}
	assert.Equal(t, 1, alerts)
}

func TestClassifierMovingAndFastMoving(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), NewStateStore())
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	c.Classify(sampleAt(base, 55.75, 37.61))

	// ~556 m in one minute is ~33 km/h.
	cls := c.Classify(sampleAt(base.Add(time.Minute), 55.755, 37.61))
	assert.Equal(t, models.MovementMoving, cls.Movement)
	assert.InDelta(t, 33.3, cls.SpeedKmh, 1.0)

	// ~1112 m in the next minute is ~67 km/h.
	cls = c.Classify(sampleAt(base.Add(2*time.Minute), 55.765, 37.61))
	assert.Equal(t, models.MovementFastMoving, cls.Movement)
	assert.Greater(t, cls.SpeedKmh, 50.0)
}

func TestClassifierSpeedIsNotCapped(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), NewStateStore())
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	c.Classify(sampleAt(base, 55.75, 37.61))

	// A one degree jump in one second yields an implausible speed; it is
	// reported as-is.
	cls := c.Classify(sampleAt(base.Add(time.Second), 56.75, 37.61))
	assert.Equal(t, models.MovementFastMoving, cls.Movement)
	assert.Greater(t, cls.SpeedKmh, 100000.0)
}

func TestClassifierMovementResetsDwell(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), NewStateStore())
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	c.Classify(sampleAt(base, 55.75, 37.61))
	for i := 1; i <= 6; i++ {
		c.Classify(sampleAt(base.Add(time.Duration(i)*time.Minute), 55.75, 37.61))
	}

	// Leave the radius, then settle again. Dwell starts from zero.
	c.Classify(sampleAt(base.Add(7*time.Minute), 55.76, 37.61))
	cls := c.Classify(sampleAt(base.Add(8*time.Minute), 55.76, 37.61))
	assert.Equal(t, models.MovementUnknown, cls.Movement)
}

func TestClassifierDayChangeResetsState(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), NewStateStore())

	day1 := time.Date(2026, 3, 2, 23, 50, 0, 0, time.UTC)
	c.Classify(sampleAt(day1, 55.75, 37.61))

	day2 := time.Date(2026, 3, 3, 0, 10, 0, 0, time.UTC)
	cls := c.Classify(sampleAt(day2, 55.75, 37.61))
	assert.Equal(t, models.MovementUnknown, cls.Movement, "first sample of a new day has no predecessor")
}

func TestStateStoreReset(t *testing.T) {
	store := NewStateStore()
	c := NewClassifier(DefaultThresholds(), store)
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	c.Classify(sampleAt(base, 55.75, 37.61))
	store.Reset(1)

	cls := c.Classify(sampleAt(base.Add(time.Minute), 56.75, 37.61))
	assert.Equal(t, models.MovementUnknown, cls.Movement, "reset must clear the last sample")
}

func TestClassifyAllAlignsWithInput(t *testing.T) {
	c := NewClassifier(DefaultThresholds(), NewStateStore())
	base := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

	samples := []models.LocationSample{
		sampleAt(base, 55.75, 37.61),
		sampleAt(base.Add(time.Minute), 55.755, 37.61),
		sampleAt(base.Add(2*time.Minute), 55.755, 37.61),
	}

	points := c.ClassifyAll(samples)
	require.Len(t, points, len(samples))
	for i := range points {
		assert.Equal(t, samples[i], points[i].Sample)
	}
	assert.Equal(t, models.MovementUnknown, points[0].Movement)
	assert.Equal(t, models.MovementMoving, points[1].Movement)
}
