package markdown_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/syncasync/pkg/markdown"
)

const guide = "# Loading\n" +
	"\n" +
	"```swift\n" +
	"func load(id: Int) -> String {\n" +
	"    return \"\"\n" +
	"}\n" +
	"```\n" +
	"\n" +
	"```go\n" +
	"func main() {}\n" +
	"```\n" +
	"\n" +
	"```\n" +
	"func fetch(completion: @escaping () -> Void) {}\n" +
	"```\n"

func TestExtract_SwiftFences(t *testing.T) {
	t.Parallel()

	blocks, err := markdown.New().Extract(context.Background(), []byte(guide))
	require.NoError(t, err)
	require.Len(t, blocks, 1)

	assert.Equal(t, "swift", blocks[0].Info)
	assert.Equal(t, 3, blocks[0].StartLine)
	assert.Equal(t, "func load(id: Int) -> String {\n    return \"\"\n}\n", string(blocks[0].Content))
}

func TestExtract_UnlabeledDetection(t *testing.T) {
	t.Parallel()

	ex := markdown.New(markdown.WithUnlabeledDetection(true))
	blocks, err := ex.Extract(context.Background(), []byte(guide))
	require.NoError(t, err)
	require.Len(t, blocks, 2)

	assert.Empty(t, blocks[1].Info)
	assert.Equal(t, 13, blocks[1].StartLine)
}

func TestExtract_CommonMarkFlavor(t *testing.T) {
	t.Parallel()

	ex := markdown.New(markdown.WithFlavor(markdown.FlavorCommonMark))
	blocks, err := ex.Extract(context.Background(), []byte(guide))
	require.NoError(t, err)
	assert.Len(t, blocks, 1)
}

func TestExtract_EmptyAndCancelled(t *testing.T) {
	t.Parallel()

	blocks, err := markdown.New().Extract(context.Background(), []byte("```swift\n```\n"))
	require.NoError(t, err)
	assert.Empty(t, blocks)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = markdown.New().Extract(ctx, []byte(guide))
	require.ErrorIs(t, err, context.Canceled)
}
