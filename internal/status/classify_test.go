package status

import (
	"testing"

	"github.com/chmouel/wtstatus/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyConflict(t *testing.T) {
	tests := []struct {
		us     models.ChangeCode
		them   models.ChangeCode
		action models.UnmergedAction
	}{
		{models.ChangeCodeAdded, models.ChangeCodeAdded, models.BothAdded},
		{models.ChangeCodeUpdatedButUnmerged, models.ChangeCodeUpdatedButUnmerged, models.BothModified},
		{models.ChangeCodeDeleted, models.ChangeCodeDeleted, models.BothDeleted},
		{models.ChangeCodeUpdatedButUnmerged, models.ChangeCodeDeleted, models.DeletedByThem},
		{models.ChangeCodeAdded, models.ChangeCodeDeleted, models.DeletedByThem},
		{models.ChangeCodeDeleted, models.ChangeCodeUpdatedButUnmerged, models.DeletedByUs},
		{models.ChangeCodeDeleted, models.ChangeCodeAdded, models.DeletedByUs},
		{models.ChangeCodeAdded, models.ChangeCodeUpdatedButUnmerged, models.AddedByUs},
		{models.ChangeCodeUpdatedButUnmerged, models.ChangeCodeAdded, models.AddedByThem},
	}

	for _, tt := range tests {
		t.Run(tt.us.String()+tt.them.String(), func(t *testing.T) {
			action, err := ClassifyConflict(tt.us, tt.them)
			require.NoError(t, err)
			assert.Equal(t, tt.action, action)
		})
	}
}

func TestClassifyConflictUnknownPair(t *testing.T) {
	tests := []struct {
		us   models.ChangeCode
		them models.ChangeCode
	}{
		{models.ChangeCodeModified, models.ChangeCodeModified},
		{models.ChangeCodeUnchanged, models.ChangeCodeUpdatedButUnmerged},
		{models.ChangeCodeRenamed, models.ChangeCodeDeleted},
	}

	for _, tt := range tests {
		t.Run(tt.us.String()+tt.them.String(), func(t *testing.T) {
			_, err := ClassifyConflict(tt.us, tt.them)
			require.Error(t, err)

			var unknownErr *UnknownConflictCodeError
			require.ErrorAs(t, err, &unknownErr)
			assert.Equal(t, tt.us, unknownErr.Us)
			assert.Equal(t, tt.them, unknownErr.Them)
		})
	}
}

func TestTextualAction(t *testing.T) {
	assert.True(t, TextualAction(models.BothAdded))
	assert.True(t, TextualAction(models.BothModified))

	assert.False(t, TextualAction(models.BothDeleted))
	assert.False(t, TextualAction(models.DeletedByUs))
	assert.False(t, TextualAction(models.DeletedByThem))
	assert.False(t, TextualAction(models.AddedByUs))
	assert.False(t, TextualAction(models.AddedByThem))
}
