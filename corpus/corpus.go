// Package corpus reads tagged training and test data laid out as two
// parallel files: one sentence per line, and the tags of that sentence on
// the same line of the tag file.
package corpus

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/multierr"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/teatak/pos/hmm"
)

const maxLineSize = 1024 * 1024

// ErrLineCountMismatch is returned when the sentence and tag files do not
// have the same number of lines.
var ErrLineCountMismatch = errors.New("sentence and tag files have different line counts")

// Load reads a sentence file and its tag file.
func Load(textPath, tagPath string) (sentences []hmm.Sentence, err error) {
	textFile, err := os.Open(textPath)
	if err != nil {
		return nil, errors.Wrap(err, "open sentences")
	}
	defer func() { err = multierr.Append(err, textFile.Close()) }()

	tagFile, err := os.Open(tagPath)
	if err != nil {
		return nil, errors.Wrap(err, "open tags")
	}
	defer func() { err = multierr.Append(err, tagFile.Close()) }()

	sentences, err = Read(textFile, tagFile)
	if err != nil {
		return nil, errors.Wrapf(err, "%s, %s", textPath, tagPath)
	}
	return sentences, nil
}

// Read pairs line i of text with line i of tags. Tokens are separated by
// white space. Lines blank in both inputs are skipped. Input is UTF-8; a
// byte order mark selects UTF-8 or UTF-16 explicitly.
func Read(text, tags io.Reader) ([]hmm.Sentence, error) {
	textScanner := newScanner(text)
	tagScanner := newScanner(tags)

	var data []hmm.Sentence
	for line := 1; ; line++ {
		hasText := textScanner.Scan()
		hasTags := tagScanner.Scan()
		if !hasText || !hasTags {
			if err := multierr.Combine(textScanner.Err(), tagScanner.Err()); err != nil {
				return nil, errors.Wrapf(err, "line %d", line)
			}
			if hasText != hasTags {
				return nil, errors.Wrapf(ErrLineCountMismatch, "line %d", line)
			}
			break
		}

		words := strings.Fields(textScanner.Text())
		fields := strings.Fields(tagScanner.Text())
		if len(words) == 0 && len(fields) == 0 {
			continue
		}
		if len(words) != len(fields) {
			return nil, errors.Wrapf(hmm.ErrCorpusMismatch, "line %d: %d words, %d tags", line, len(words), len(fields))
		}

		s := hmm.Sentence{Words: words, Tags: make([]hmm.Tag, len(fields))}
		for i, f := range fields {
			s.Tags[i] = hmm.Tag(f)
		}
		data = append(data, s)
	}
	return data, nil
}

func newScanner(r io.Reader) *bufio.Scanner {
	dec := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	scanner := bufio.NewScanner(dec)
	buf := make([]byte, maxLineSize)
	scanner.Buffer(buf, maxLineSize)
	return scanner
}
