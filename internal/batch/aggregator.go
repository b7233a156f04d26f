// Package batch processes a directory of statement documents: discovery,
// grouping of parse results by account, and merged statement date ranges
// for the per-group output files.
package batch

import (
	"fmt"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"finparse/stmt-ledger/internal/fileutils"
	"finparse/stmt-ledger/internal/logging"
	"finparse/stmt-ledger/internal/models"
)

// DateRange represents a date range with start and end dates.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// String returns the date range in the format "YYYY-MM-DD_YYYY-MM-DD".
func (dr DateRange) String() string {
	if dr.Start.IsZero() || dr.End.IsZero() {
		return ""
	}
	return fmt.Sprintf("%s_%s",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"))
}

// Merge combines this date range with another, returning the overall range.
func (dr DateRange) Merge(other DateRange) DateRange {
	start := dr.Start
	end := dr.End

	if dr.Start.IsZero() {
		start = other.Start
	} else if !other.Start.IsZero() && other.Start.Before(start) {
		start = other.Start
	}

	if dr.End.IsZero() {
		end = other.End
	} else if !other.End.IsZero() && other.End.After(end) {
		end = other.End
	}

	return DateRange{Start: start, End: end}
}

// FileResult pairs a parsed document with its source path.
type FileResult struct {
	Path   string
	Result *models.ParseResult
}

// Group collects the parse results belonging to one account.
type Group struct {
	AccountID string
	Results   []FileResult
	DateRange DateRange
}

// Aggregator drives a batch run.
type Aggregator struct {
	logger logging.Logger
}

// NewAggregator creates an Aggregator.
func NewAggregator(logger logging.Logger) *Aggregator {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Aggregator{logger: logger}
}

// DiscoverFiles lists the statement documents under a directory, sorted.
func (a *Aggregator) DiscoverFiles(dir string) ([]string, error) {
	files, err := fileutils.ListFilesWithExtensions(dir, ".pdf", ".json")
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	a.logger.Info("discovered statement documents",
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: "dir", Value: dir})
	return files, nil
}

// GroupByAccount groups successful parse results by account number, falling
// back to the sanitized file stem when the metadata carries none. Each
// group's date range merges the statement periods of its members; results
// without a period contribute their transaction date span instead.
func (a *Aggregator) GroupByAccount(results []FileResult) []Group {
	byAccount := make(map[string]*Group)
	for _, fr := range results {
		id := accountKey(fr)
		group, ok := byAccount[id]
		if !ok {
			group = &Group{AccountID: id}
			byAccount[id] = group
		}
		group.Results = append(group.Results, fr)
		group.DateRange = group.DateRange.Merge(resultRange(fr.Result))
	}

	groups := make([]Group, 0, len(byAccount))
	for _, group := range byAccount {
		groups = append(groups, *group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].AccountID < groups[j].AccountID
	})

	a.logger.Info("grouped results by account",
		logging.Field{Key: "results", Value: len(results)},
		logging.Field{Key: "groups", Value: len(groups)})
	return groups
}

// MergeTransactions flattens a group's ledgers into one, ordered by date
// with the per-file order preserved for equal dates.
func (a *Aggregator) MergeTransactions(group Group) []models.Transaction {
	var all []models.Transaction
	for _, fr := range group.Results {
		all = append(all, fr.Result.Transactions...)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Date.Before(all[j].Date)
	})
	return all
}

// OutputFilename names a group's consolidated output file:
// {account}_{start}_{end}.{ext}, degrading to {account}.{ext} without a
// usable range.
func (a *Aggregator) OutputFilename(group Group, ext string) string {
	if r := group.DateRange.String(); r != "" {
		return fmt.Sprintf("%s_%s.%s", group.AccountID, r, ext)
	}
	return fmt.Sprintf("%s.%s", group.AccountID, ext)
}

var unsafeIDChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeAccountID makes an account identifier filesystem-safe.
func SanitizeAccountID(id string) string {
	id = strings.TrimSpace(id)
	id = unsafeIDChars.ReplaceAllString(id, "_")
	id = strings.Trim(id, "_")
	if id == "" {
		return "unknown"
	}
	return id
}

func accountKey(fr FileResult) string {
	if fr.Result != nil && fr.Result.Metadata.AccountNo != "" {
		return SanitizeAccountID(fr.Result.Metadata.AccountNo)
	}
	base := filepath.Base(fr.Path)
	return SanitizeAccountID(strings.TrimSuffix(base, filepath.Ext(base)))
}

func resultRange(result *models.ParseResult) DateRange {
	if result == nil {
		return DateRange{}
	}
	if !result.Metadata.Period.IsZero() {
		return DateRange{Start: result.Metadata.Period.From, End: result.Metadata.Period.To}
	}

	var r DateRange
	for _, t := range result.Transactions {
		if !t.HasDate() {
			continue
		}
		if r.Start.IsZero() || t.Date.Before(r.Start) {
			r.Start = t.Date
		}
		if r.End.IsZero() || t.Date.After(r.End) {
			r.End = t.Date
		}
	}
	return r
}
