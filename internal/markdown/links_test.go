package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractLinks_InlineLink(t *testing.T) {
	links, err := ExtractLinks([]byte("See [API](api.md) for details."))
	require.NoError(t, err)
	require.Equal(t, []Link{{Kind: LinkKindInline, Destination: "api.md"}}, links)
}

func TestExtractLinks_ImageLink(t *testing.T) {
	links, err := ExtractLinks([]byte("![Diagram](diagram.png)"))
	require.NoError(t, err)
	require.Equal(t, []Link{{Kind: LinkKindImage, Destination: "diagram.png"}}, links)
}

func TestExtractLinks_AutoLink(t *testing.T) {
	links, err := ExtractLinks([]byte("<https://example.com/path>"))
	require.NoError(t, err)
	require.Equal(t, []Link{{Kind: LinkKindAuto, Destination: "https://example.com/path"}}, links)
}

func TestExtractLinks_ReferenceLinkUsageAndDefinition(t *testing.T) {
	links, err := ExtractLinks([]byte("See [API][ref].\n\n[ref]: api.md\n"))
	require.NoError(t, err)
	require.Equal(t, []Link{
		{Kind: LinkKindInline, Destination: "api.md"},
		{Kind: LinkKindReferenceDefinition, Destination: "api.md"},
	}, links)
}

func TestExtractLinks_SkipsInlineCodeAndCodeBlocks(t *testing.T) {
	src := []byte("" +
		"Inline code: `[Link](./ignored-inline.md)`\n" +
		"\n" +
		"```\n" +
		"[Link](./ignored-fence.md)\n" +
		"```\n" +
		"\n" +
		"Real: [OK](./real.md)\n")

	links, err := ExtractLinks(src)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, "./real.md", links[0].Destination)
}
