package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClock(t *testing.T) {
	min, err := ParseClock("08:30")
	require.NoError(t, err)
	assert.Equal(t, 8*60+30, min)

	min, err = ParseClock("00:00")
	require.NoError(t, err)
	assert.Equal(t, 0, min)

	min, err = ParseClock("23:59")
	require.NoError(t, err)
	assert.Equal(t, 23*60+59, min)

	_, err = ParseClock("25:00")
	assert.Error(t, err)

	_, err = ParseClock("bogus")
	assert.Error(t, err)
}

func TestClassScheduleOverlaps(t *testing.T) {
	c := ClassSchedule{StartTime: "10:00", EndTime: "12:00"}

	assert.True(t, c.Overlaps(10*60, 60), "session inside class")
	assert.True(t, c.Overlaps(9*60+30, 60), "session spanning class start")
	assert.True(t, c.Overlaps(11*60+30, 60), "session spanning class end")
	assert.False(t, c.Overlaps(12*60, 60), "session starting at class end")
	assert.False(t, c.Overlaps(9*60, 60), "session ending at class start")
}

func TestClassScheduleOverlaps_MalformedTimes(t *testing.T) {
	c := ClassSchedule{StartTime: "oops", EndTime: "12:00"}
	assert.False(t, c.Overlaps(10*60, 60))
}
