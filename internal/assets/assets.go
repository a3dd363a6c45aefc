package assets

import (
	"bufio"
	"bytes"
	"embed"
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/zeebo/blake3"
)

//go:embed docs/*.md help/*.md
var bundle embed.FS

// DefaultDocument is the document shown when none is configured.
const DefaultDocument = "TestMarkdown"

var ErrNotFound = errors.New("bundled document not found")

// HelpPage describes one entry of the help catalog.
type HelpPage struct {
	Name  string
	Title string
	file  string
}

// Document reads a bundled Markdown document by name (without extension).
func Document(name string) ([]byte, error) {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".md")
	if name == "" {
		name = DefaultDocument
	}
	data, err := bundle.ReadFile(path.Join("docs", name+".md"))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, name)
		}
		return nil, err
	}
	return data, nil
}

// Documents lists the names of all bundled documents.
func Documents() []string {
	entries, _ := bundle.ReadDir("docs")
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".md") {
			continue
		}
		out = append(out, strings.TrimSuffix(e.Name(), ".md"))
	}
	sort.Strings(out)
	return out
}

// HelpPages returns the full help catalog ordered by filename.
// The page name drops the numeric ordering prefix: "01-getting-started.md" is "getting-started".
func HelpPages() []HelpPage {
	entries, _ := bundle.ReadDir("help")
	files := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	out := make([]HelpPage, 0, len(files))
	for _, f := range files {
		data, err := bundle.ReadFile(path.Join("help", f))
		if err != nil {
			continue
		}
		name := pageName(f)
		title := firstHeading(data)
		if title == "" {
			title = name
		}
		out = append(out, HelpPage{Name: name, Title: title, file: f})
	}
	return out
}

// HelpPageNames returns the catalog names in display order.
func HelpPageNames() []string {
	pages := HelpPages()
	out := make([]string, 0, len(pages))
	for _, p := range pages {
		out = append(out, p.Name)
	}
	return out
}

// ReadHelpPage returns the Markdown body of a help page.
func ReadHelpPage(name string) ([]byte, error) {
	for _, p := range HelpPages() {
		if p.Name == name {
			return bundle.ReadFile(path.Join("help", p.file))
		}
	}
	return nil, fmt.Errorf("%w: help page %s", ErrNotFound, name)
}

// Digest returns a hex BLAKE3 digest of a document.
func Digest(data []byte) string {
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func pageName(file string) string {
	base := strings.TrimSuffix(file, ".md")
	if i := strings.IndexByte(base, '-'); i > 0 && isDigits(base[:i]) {
		return base[i+1:]
	}
	return base
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return s != ""
}

func firstHeading(data []byte) string {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if strings.HasPrefix(line, "#") {
			return strings.TrimSpace(strings.TrimLeft(line, "#"))
		}
	}
	return ""
}
