package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "landregistry/pkg/domain-errors"
)

func TestPage(t *testing.T) {
	log := []int{1, 2, 3, 4, 5}

	t.Run("clips to available length", func(t *testing.T) {
		page, err := Page(log, 3, 10)
		require.NoError(t, err)
		assert.Equal(t, []int{4, 5}, page)
	})

	t.Run("offset equal to length is empty", func(t *testing.T) {
		page, err := Page(log, 5, 2)
		require.NoError(t, err)
		assert.Empty(t, page)
	})

	t.Run("offset beyond length fails", func(t *testing.T) {
		_, err := Page(log, 6, 1)
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
		assert.Equal(t, "invalid offset", dErrors.MessageOf(err))
	})

	t.Run("successive pages reproduce the log exactly once", func(t *testing.T) {
		var all []int
		for offset := 0; offset < len(log); offset += 2 {
			page, err := Page(log, offset, 2)
			require.NoError(t, err)
			all = append(all, page...)
		}
		assert.Equal(t, log, all)
	})

	t.Run("returned page does not alias the log", func(t *testing.T) {
		page, err := Page(log, 0, 1)
		require.NoError(t, err)
		page[0] = 99
		assert.Equal(t, 1, log[0])
	})
}
