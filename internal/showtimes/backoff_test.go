package showtimes

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestBackoffDelay_DefaultBase(t *testing.T) {
	require.Equal(t, 2*time.Second, backoffDelay(2, 1))
	require.Equal(t, 4*time.Second, backoffDelay(2, 2))
	require.Equal(t, 8*time.Second, backoffDelay(2, 3))
}

func TestBackoffDelay_FractionalBase(t *testing.T) {
	require.Equal(t, 1500*time.Millisecond, backoffDelay(1.5, 1))
	require.Equal(t, 2250*time.Millisecond, backoffDelay(1.5, 2))
}
