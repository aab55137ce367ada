package catalog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/ryclarke/gh-metadata-migrator/config"
	"github.com/ryclarke/gh-metadata-migrator/utils"
)

// Pair is a single source/target mapping read from the input file.
// Identifiers are kept raw; they are parsed into repository references per pair,
// so that a malformed identifier fails only its own pair.
type Pair struct {
	Source string `json:"source"`
	Target string `json:"target"`
	// Line is the 1-based line number the pair was read from.
	Line int `json:"line"`
}

func (p Pair) String() string {
	return p.Source + config.PairDelimiter + p.Target
}

// LoadPairs reads the pair file at path. Only an unreadable file is an error;
// lines that do not hold exactly one delimiter are skipped.
func LoadPairs(ctx context.Context, path string) ([]Pair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	pairs, err := ParsePairs(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file %s: %w", path, err)
	}

	return pairs, nil
}

// ParsePairs reads "source::target" lines from r, trimming both sides.
// Lines may be of any length.
func ParsePairs(ctx context.Context, r io.Reader) ([]Pair, error) {
	logger := utils.Logger(ctx)
	pairs := make([]Pair, 0)
	reader := bufio.NewReader(r)

	for line := 1; ; line++ {
		text, err := reader.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}

		switch count := strings.Count(text, config.PairDelimiter); {
		case count == 1:
			parts := strings.Split(strings.TrimSpace(text), config.PairDelimiter)
			pairs = append(pairs, Pair{
				Source: strings.TrimSpace(parts[0]),
				Target: strings.TrimSpace(parts[1]),
				Line:   line,
			})
		case count > 1:
			logger.Debug("Skipping line with more than one delimiter", zap.Int("line", line), zap.Int("delimiters", count))
		}

		if err != nil {
			return pairs, nil
		}
	}
}
