package conflict

import (
	stderrors "errors"
	"testing"
	"time"

	"github.com/arthur-debert/selfunzip/pkg/errors"
	"github.com/arthur-debert/selfunzip/pkg/filesystem"
	"github.com/arthur-debert/selfunzip/pkg/testutil"
	"github.com/arthur-debert/selfunzip/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	oldTime  = time.Date(2001, 2, 3, 4, 5, 6, 0, time.UTC)
	newTime  = time.Date(2005, 6, 7, 8, 9, 10, 0, time.UTC)
	incoming = types.FileInfo{Size: 2048, ModTime: newTime}
)

func setup(t *testing.T, choices ...types.ConflictChoice) (*Resolver, *testutil.ScriptedPrompter, types.FS) {
	t.Helper()
	fs := filesystem.NewMemory()
	require.NoError(t, fs.MkdirAll("/root", 0755))
	for _, name := range []string{"/root/a.txt", "/root/b.txt", "/root/c.txt"} {
		require.NoError(t, fs.WriteFile(name, []byte("old content"), 0644))
		require.NoError(t, fs.Chtimes(name, oldTime, oldTime))
	}
	p := testutil.NewScriptedPrompter(choices...)
	return NewResolver(p, fs, ""), p, fs
}

func TestMissingDestinationIsNotAConflict(t *testing.T) {
	r, p, _ := setup(t)

	d, err := r.Decide("/root/new.txt", incoming)
	require.NoError(t, err)
	assert.Equal(t, Overwrite, d)
	assert.Empty(t, p.ConflictPrompts)
}

func TestChoicesMapToDecisions(t *testing.T) {
	tests := []struct {
		choice types.ConflictChoice
		want   Decision
	}{
		{types.ConflictYes, Overwrite},
		{types.ConflictYesToAll, OverwriteAll},
		{types.ConflictNo, Skip},
		{types.ConflictCancel, Abort},
	}

	for _, tt := range tests {
		t.Run(tt.choice.String(), func(t *testing.T) {
			r, p, _ := setup(t, tt.choice)
			d, err := r.Decide("/root/a.txt", incoming)
			require.NoError(t, err)
			assert.Equal(t, tt.want, d)
			assert.Len(t, p.ConflictPrompts, 1)
		})
	}
}

func TestOverwriteAllIsSticky(t *testing.T) {
	r, p, _ := setup(t, types.ConflictYesToAll)

	d, err := r.Decide("/root/a.txt", incoming)
	require.NoError(t, err)
	assert.Equal(t, OverwriteAll, d)
	assert.True(t, r.OverwriteAll())

	for _, name := range []string{"/root/b.txt", "/root/c.txt", "/root/a.txt"} {
		d, err := r.Decide(name, incoming)
		require.NoError(t, err)
		assert.Equal(t, Overwrite, d)
	}
	assert.Len(t, p.ConflictPrompts, 1, "no prompts after yes-to-all")
}

func TestNewResolverResetsStickyFlag(t *testing.T) {
	r, _, fs := setup(t, types.ConflictYesToAll)
	_, err := r.Decide("/root/a.txt", incoming)
	require.NoError(t, err)

	p2 := testutil.NewScriptedPrompter(types.ConflictNo)
	r2 := NewResolver(p2, fs, "")
	assert.False(t, r2.OverwriteAll())
	d, err := r2.Decide("/root/a.txt", incoming)
	require.NoError(t, err)
	assert.Equal(t, Skip, d)
}

func TestPromptCarriesBothFilesMetadata(t *testing.T) {
	r, p, _ := setup(t, types.ConflictNo)

	_, err := r.Decide("/root/b.txt", incoming)
	require.NoError(t, err)
	require.Len(t, p.ConflictPrompts, 1)

	prompt := p.ConflictPrompts[0]
	assert.Equal(t, "b.txt", prompt.FileName)
	assert.Equal(t, "/root/b.txt", prompt.Destination)
	assert.Equal(t, uint64(len("old content")), prompt.Existing.Size)
	assert.True(t, prompt.Existing.ModTime.Equal(oldTime))
	assert.Equal(t, incoming, prompt.Incoming)

	assert.Contains(t, prompt.Message, "File name conflict")
	assert.Contains(t, prompt.Message, "2001-02-03 04:05:06")
	assert.Contains(t, prompt.Message, "2005-06-07 08:09:10")
	assert.Contains(t, prompt.Message, "2,048 bytes")
	assert.Contains(t, prompt.Message, "2.0 kB")
}

func TestPromptErrorAborts(t *testing.T) {
	r, p, _ := setup(t)
	p.ConflictErr = stderrors.New("stdin closed")

	d, err := r.Decide("/root/a.txt", incoming)
	assert.Equal(t, Abort, d)
	assert.True(t, errors.IsErrorCode(err, errors.ErrPrompt))
}

func TestDecisionWrites(t *testing.T) {
	assert.True(t, Overwrite.Writes())
	assert.True(t, OverwriteAll.Writes())
	assert.False(t, Skip.Writes())
	assert.False(t, Abort.Writes())
}
