// Package feedmanager provides support for retrieving, reading, parsing, deleting and saving transit feeds to a database
package feedmanager

import (
	"database/sql"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/foundation/httpclient"
	"github.com/jmoiron/sqlx"
)

// dataSetDeleteStatements removes every feed table's rows for one data set. Table names
// must match the insert targets in business/data/feed, and the data_set row goes last.
var dataSetDeleteStatements = []struct {
	query string
	name  string
}{
	{
		name:  "stop_time",
		query: "delete from stop_time where data_set_id = ?",
	},
	{
		name:  "trip",
		query: "delete from trip where data_set_id = ?",
	},
	{
		name:  "shape",
		query: "delete from shape where data_set_id = ?",
	},
	{
		name:  "calendar",
		query: "delete from calendar where data_set_id = ?",
	},
	{
		name:  "stop",
		query: "delete from stop where data_set_id = ?",
	},
	{
		name:  "route",
		query: "delete from route where data_set_id = ?",
	},
	{
		name:  "data_set",
		query: "delete from data_set where id = ?",
	},
}

// DeleteSchedule deletes all feed records associated with feed.DataSet with dataSetId
func DeleteSchedule(log *log.Logger,
	db *sqlx.DB,
	dataSetId int64) error {

	dataSet, err := feed.GetDataSet(db, dataSetId)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("no DataSet found with id %d", dataSetId)
		}
		return err
	}
	err = transact(log, db, func(tx *sqlx.Tx) error {
		log.Printf("Removing dataSet %v", dataSet)
		for _, deleteStatement := range dataSetDeleteStatements {
			stmt, innerErr := tx.Prepare(tx.Rebind(deleteStatement.query))
			if innerErr != nil {
				return fmt.Errorf("error running '%s' error:%w", deleteStatement.query, innerErr)
			}
			result, innerErr := stmt.Exec(dataSet.Id)
			if innerErr != nil {
				return fmt.Errorf("error running '%s' error:%w", deleteStatement.query, innerErr)
			}
			rows, innerErr := result.RowsAffected()
			if innerErr != nil {
				return fmt.Errorf("error retrieving rows affected after '%s' error:%w", deleteStatement.query, innerErr)
			}
			log.Printf("Deleted %d lines from %s\n", rows, deleteStatement.name)
		}
		return nil
	})
	if err != nil {
		return err
	}
	log.Printf("Deleted DataSet %v", dataSet)
	return nil
}

// UpdateSchedule checks for updated feed file on remote server
// if new version is detected attempts to load feed file in zip format to localDownloadDirectory from url to database
// forceDownload flag will bypass remote check
func UpdateSchedule(log *log.Logger,
	db *sqlx.DB,
	localDownloadDirectory string,
	url string,
	forceDownload bool) error {
	if forceDownload {
		log.Printf("Not checking remote feed file for new information, forcing load of feed file")
	} else if !shouldUpdateSchedule(log, db, url) {
		return nil
	}

	err := makeDirectoryIfNotPresent(localDownloadDirectory)
	if err != nil {
		return err
	}
	start := time.Now()
	localFeedZipFile := filepath.Join(localDownloadDirectory, "feed.zip")
	log.Printf("Downloading file from %s to %s\n", url, localFeedZipFile)
	downloadedFile, err := httpclient.DownloadRemoteFile(localFeedZipFile, url)

	//remove downloaded file after we are done
	defer func() {
		if _, err := os.Stat(localFeedZipFile); err == nil {
			err = os.Remove(localFeedZipFile)
			if err != nil {
				log.Printf("Unable to remove downloaded file. error:%v", err)
			}
		}
	}()
	if err != nil {
		return err
	}

	log.Printf("Downloaded %v bytes in %v seconds\n",
		downloadedFile.Size, downloadedFile.DownloadedAt.Unix()-start.Unix())

	_, err = loadScheduleFromFile(log, db, *downloadedFile)

	return err
}

// shouldUpdateSchedule compares the currently loaded feed.DataSet to what's available on the
// remote server and returns true when a difference is seen.
// On error logs and returns false.
func shouldUpdateSchedule(log *log.Logger, db *sqlx.DB, url string) bool {
	remoteFileInfo, err := httpclient.GetRemoteFileInfo(url)
	if err != nil {
		log.Printf("Unable to retrieve remote file information from '%s' error: %v", url, err)
		return false
	}

	existingDataSet, err := feed.GetLatestSavedDataSet(db)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Printf("No DataSet loaded, should perform initial load")
			return true
		}
		log.Printf("Received error checking DataSet from database. error: %v", err)
		return false
	}
	if len(remoteFileInfo.ETag) == 0 && remoteFileInfo.LastModifiedTimestamp == 0 {
		log.Printf("Unable to determine remote file timestamp or eTag, can not determine if dataset should be reloaded")
		return false
	}
	if remoteFileInfo.IsDifferent(existingDataSet.ETag, existingDataSet.LastModifiedTimestamp) {
		log.Printf("Remote file version indicates new file available")
		return true
	}
	log.Printf("Remote file version indicates the loaded DataSet is current: %v", existingDataSet)
	return false
}

// ListSchedules displays a list of all DataSets
func ListSchedules(db *sqlx.DB) error {
	fmt.Println("Loaded DataSets:")
	dataSets, err := feed.GetAllDataSets(db)
	if err != nil {
		return err
	}
	for _, ds := range dataSets {
		fmt.Println(ds)
	}
	return nil
}

// loadScheduleFromFile loads feed file described in httpclient.DownloadedFile and saves it to new DataSet
// wrapped inside single transaction
func loadScheduleFromFile(log *log.Logger,
	db *sqlx.DB,
	downloadedFile httpclient.DownloadedFile) (*feed.DataSet, error) {
	// Create data set to save other data under
	ds := feed.DataSet{
		URL:                   downloadedFile.RemoteFileInfo.Path,
		ETag:                  downloadedFile.RemoteFileInfo.ETag,
		LastModifiedTimestamp: downloadedFile.RemoteFileInfo.LastModifiedTimestamp,
		DownloadedAt:          downloadedFile.DownloadedAt,
	}
	err := transact(log, db, func(tx *sqlx.Tx) error {
		err := feed.SaveDataSet(tx, &ds)
		if err != nil {
			return err
		}

		// create DataSetTransaction for recording feed records
		dsTx := feed.DataSetTransaction{
			DS: ds,
			Tx: tx,
		}

		err = loadFeedZipFile(log, &dsTx, downloadedFile.LocalFilePath)
		if err != nil {
			return err
		}
		return feed.MarkDataSetSaved(tx, &ds, time.Now())
	})

	return &ds, err
}

func makeDirectoryIfNotPresent(directory string) error {
	if _, err := os.Stat(directory); os.IsNotExist(err) {
		err = os.Mkdir(directory, os.ModePerm)
		if err != nil {
			return err
		}
	}
	return nil
}

/*
transact starts a Transaction on sqlx.DB, calls txFunc and commits or rolls back the transaction depending on the
return code of the txFunc result
*/
func transact(log *log.Logger, db *sqlx.DB, txFunc func(*sqlx.Tx) error) (err error) {
	tx, err := db.Beginx()
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			rollbackErr := tx.Rollback() // err is non-nil; don't change it
			if rollbackErr != nil {
				log.Printf("Received error while attempting to rollback transaction. error:%v", rollbackErr)
			}
			return
		}
		err = tx.Commit() // err is nil; if Commit returns error update err
	}()
	err = txFunc(tx)
	return err
}
