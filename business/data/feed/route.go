package feed

import (
	"github.com/jmoiron/sqlx"
)

// Route contains a record from a feed routes.txt file
type Route struct {
	DataSetId int64  `db:"data_set_id" json:"-"`
	RouteId   string `db:"route_id" json:"route_id"`
	ShortName string `db:"short_name" json:"short_name"`
	LongName  string `db:"long_name" json:"long_name"`
	Color     string `db:"color" json:"color"`
	TextColor string `db:"text_color" json:"text_color"`
	SortOrder int    `db:"sort_order" json:"-"`
}

// RecordRoutes saves routes to database in a batch
func RecordRoutes(routes []*Route, dsTx *DataSetTransaction) error {
	if len(routes) == 0 {
		return nil
	}
	for _, route := range routes {
		route.DataSetId = dsTx.DS.Id
	}

	statementString := "insert into route ( " +
		"data_set_id, " +
		"route_id, " +
		"short_name, " +
		"long_name, " +
		"color, " +
		"text_color, " +
		"sort_order) " +
		"values (" +
		":data_set_id, " +
		":route_id, " +
		":short_name, " +
		":long_name, " +
		":color, " +
		":text_color, " +
		":sort_order)"
	statementString = dsTx.Tx.Rebind(statementString)
	_, err := dsTx.Tx.NamedExec(statementString, routes)
	return err
}

// GetRoutes retrieves all routes in dataSetId ordered for display
func GetRoutes(db *sqlx.DB, dataSetId int64) ([]*Route, error) {
	query := "select * from route where data_set_id = $1 order by sort_order, route_id"
	var results []*Route
	err := db.Select(&results, db.Rebind(query), dataSetId)
	return results, err
}
