package feedmanager

import (
	"strings"
	"testing"
)

func Test_dataSetDeleteStatements_matchFeedTables(t *testing.T) {
	// table names the feed package inserts into, child rows first so the
	// data_set row is removed last
	want := []string{"stop_time", "trip", "shape", "calendar", "stop", "route", "data_set"}

	if len(dataSetDeleteStatements) != len(want) {
		t.Fatalf("dataSetDeleteStatements covers %d tables, want %d", len(dataSetDeleteStatements), len(want))
	}
	for i, deleteStatement := range dataSetDeleteStatements {
		if deleteStatement.name != want[i] {
			t.Errorf("delete statement %d targets %s, want %s", i, deleteStatement.name, want[i])
		}
		if !strings.HasPrefix(deleteStatement.query, "delete from "+deleteStatement.name+" where ") {
			t.Errorf("query for %s does not delete from its named table: %q", deleteStatement.name, deleteStatement.query)
		}
	}
}
