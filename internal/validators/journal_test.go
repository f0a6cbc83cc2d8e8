package validators

import (
	"testing"

	"github.com/rmorgan-dev/folio/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateDraft_Success(t *testing.T) {
	draft := &models.EntryDraft{
		Title:   "First entry",
		Content: "Some content",
		Mood:    "happy",
		Tags:    []string{"Go", "go", " Journal "},
	}

	require.NoError(t, ValidateDraft(draft))
	assert.Equal(t, []string{"go", "journal"}, draft.Tags)
}

func TestValidateDraft_EmptyTitle(t *testing.T) {
	draft := &models.EntryDraft{Title: "   ", Content: "c"}
	assert.ErrorIs(t, ValidateDraft(draft), ErrEmptyTitle)
}

func TestValidateDraft_EmptyContent(t *testing.T) {
	draft := &models.EntryDraft{Title: "t", Content: ""}
	assert.ErrorIs(t, ValidateDraft(draft), ErrEmptyContent)
}

func TestValidateDraft_UnknownMood(t *testing.T) {
	draft := &models.EntryDraft{Title: "t", Content: "c", Mood: "exuberant"}
	assert.ErrorIs(t, ValidateDraft(draft), ErrUnknownMood)
}

func TestValidateDraft_EmptyMoodAllowed(t *testing.T) {
	draft := &models.EntryDraft{Title: "t", Content: "c"}
	assert.NoError(t, ValidateDraft(draft))
}

func TestValidatePatch_Empty(t *testing.T) {
	patch := &models.EntryPatch{}
	assert.ErrorIs(t, ValidatePatch(patch), ErrEmptyPatch)
}

func TestValidatePatch_BlankTitle(t *testing.T) {
	title := "  "
	patch := &models.EntryPatch{Title: &title}
	assert.ErrorIs(t, ValidatePatch(patch), ErrEmptyTitle)
}

func TestValidatePatch_NormalizesTags(t *testing.T) {
	tags := []string{"Alpha", "BETA", "alpha"}
	patch := &models.EntryPatch{Tags: &tags}

	require.NoError(t, ValidatePatch(patch))
	assert.Equal(t, []string{"alpha", "beta"}, *patch.Tags)
}

func TestNormalizeTags(t *testing.T) {
	tests := []struct {
		name string
		in   []string
		want []string
	}{
		{"nil stays nil", nil, nil},
		{"lowercased", []string{"GoLang"}, []string{"golang"}},
		{"dedup keeps first", []string{"a", "b", "A"}, []string{"a", "b"}},
		{"drops empties", []string{"", "  ", "x"}, []string{"x"}},
		{"order preserved", []string{"z", "a", "m"}, []string{"z", "a", "m"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeTags(tt.in))
		})
	}
}

func TestValidateCredentials(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "a@x.com", "validpass", nil},
		{"no at sign", "ax.com", "validpass", ErrInvalidEmail},
		{"at sign first", "@x.com", "validpass", ErrInvalidEmail},
		{"at sign last", "a@", "validpass", ErrInvalidEmail},
		{"short password", "a@x.com", "short", ErrPasswordTooWeak},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentials(tt.email, tt.password)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
