package store

import (
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/ezBadminton/groupcup/core"
)

// Parses a master ranking from CSV.
//
// The header needs a "name" column. An optional "rank" column orders
// the rows, otherwise the file order is the ranking.
func ParseRankingCSV(reader io.Reader) ([]*core.Competitor, error) {
	csvReader := csv.NewReader(reader)
	csvReader.TrimLeadingSpace = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("csv must include a header row and at least one data row")
	}

	headers := make(map[string]int, len(records[0]))
	for idx, col := range records[0] {
		headers[strings.ToLower(strings.TrimSpace(col))] = idx
	}
	if _, ok := headers["name"]; !ok {
		return nil, fmt.Errorf("missing required column %q", "name")
	}
	rankIdx, hasRank := headers["rank"]

	type entry struct {
		competitor *core.Competitor
		rank       int
	}

	entries := make([]entry, 0, len(records)-1)
	seen := make(map[string]int, len(records)-1)
	for i, record := range records[1:] {
		lineNo := i + 2

		name := strings.TrimSpace(readValue(record, headers["name"]))
		if err := core.ValidateName(name); err != nil {
			return nil, fmt.Errorf("line %d name: %w", lineNo, err)
		}
		if first, ok := seen[name]; ok {
			return nil, fmt.Errorf("line %d name: %q already on line %d: %w", lineNo, name, first, core.ErrDuplicateName)
		}
		seen[name] = lineNo

		rank := lineNo
		if hasRank {
			rank, err = readInt(record, rankIdx)
			if err != nil {
				return nil, fmt.Errorf("line %d rank: %w", lineNo, err)
			}
		}

		entries = append(entries, entry{competitor: core.NewCompetitor(name), rank: rank})
	}

	slices.SortStableFunc(entries, func(a, b entry) int { return a.rank - b.rank })

	ranking := make([]*core.Competitor, 0, len(entries))
	for _, e := range entries {
		ranking = append(ranking, e.competitor)
	}
	core.Renumber(ranking)

	return ranking, nil
}

func readInt(record []string, idx int) (int, error) {
	value := strings.TrimSpace(readValue(record, idx))
	if value == "" {
		return 0, fmt.Errorf("value is required")
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer %q", value)
	}
	return parsed, nil
}

func readValue(record []string, idx int) string {
	if idx < 0 || idx >= len(record) {
		return ""
	}
	return record[idx]
}
