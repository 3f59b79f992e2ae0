package feedmanager

import (
	"archive/zip"
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"
	"time"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
)

// feedRowReader interface defines methods used to read rows from a feed csv file and record them to a database
type feedRowReader interface {

	// addRow should read the current line from feedFileParser and record the resulting record with dsTx
	// or store the record to be recorded in a batch later via flush
	addRow(parser *feedFileParser, dsTx *feed.DataSetTransaction) error

	// flush should record any pending records with dsTx, if any
	flush(dsTx *feed.DataSetTransaction) error
}

// feedFileParser reads one csv file line by line. Errors while extracting data types
// are collected with the line number they happened on.
type feedFileParser struct {
	Filename       string
	line           int
	csvReader      *csv.Reader
	headers        []string
	currentRecords []string
	errors         []error
}

// makeFeedFileParser creates new feedFileParser from io.Reader
func makeFeedFileParser(r io.Reader, filename string) (*feedFileParser, error) {
	csvReader := csv.NewReader(r)

	headers, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("unable to load header in %s: %v", filename, err)
	}
	removeBOMIfPresent(headers)

	return &feedFileParser{
		Filename:       filename,
		line:           1,
		csvReader:      csvReader,
		headers:        headers,
		currentRecords: headers,
	}, nil
}

func removeBOMIfPresent(headers []string) {
	if len(headers) < 1 || len(headers[0]) < 1 {
		return
	}
	runes := []rune(headers[0])
	if runes[0] == '\uFEFF' {
		headers[0] = string(runes[1:])
	}
}

// getString retrieves string
// returns empty string if missing
func (p *feedFileParser) getString(name string, optional bool) string {
	result, err := findValue(name, p.currentRecords, p.headers, optional)
	if err != nil {
		p.errors = append(p.errors, err)
	}
	if result == nil {
		return ""
	}
	return *result
}

// getFloat64 retrieves float64
// returns 0 if missing.
func (p *feedFileParser) getFloat64(name string, optional bool) float64 {
	value, err := findValue(name, p.currentRecords, p.headers, optional)
	if err != nil || value == nil || len(*value) == 0 {
		if err != nil {
			p.errors = append(p.errors, err)
		}
		return 0
	}
	result, err := strconv.ParseFloat(*value, 64)
	if err != nil {
		p.errors = append(p.errors, csvError(name, err))
		return 0
	}
	return result
}

// getInt retrieves int
// returns 0 if missing.
func (p *feedFileParser) getInt(name string, optional bool) int {
	value, err := findValue(name, p.currentRecords, p.headers, optional)
	if err != nil || value == nil || len(*value) == 0 {
		if err != nil {
			p.errors = append(p.errors, err)
		}
		return 0
	}
	result, err := strconv.Atoi(*value)
	if err != nil {
		p.errors = append(p.errors, csvError(name, err))
		return 0
	}
	return result
}

// getFeedTime retrieves seconds since midnight from an HH:MM:SS value. Hours past
// 23 are allowed, trips crossing midnight carry times above 24:00:00.
func (p *feedFileParser) getFeedTime(name string, optional bool) int {
	value, err := findValue(name, p.currentRecords, p.headers, optional)
	if err != nil {
		p.errors = append(p.errors, err)
		return 0
	}
	if value == nil {
		return 0
	}
	str := strings.TrimSpace(*value)
	if len(str) == 0 {
		if !optional {
			p.errors = append(p.errors, fmt.Errorf("missing required value in column %v", name))
		}
		return 0
	}
	if strings.Count(str, ":") != 2 {
		p.errors = append(p.errors, csvError(name, fmt.Errorf("expected HH:MM:SS format: %s", str)))
		return 0
	}
	return feed.TimeToSeconds(str)
}

// getFeedDate retrieves a YYYYMMDD service date, kept as a string
func (p *feedFileParser) getFeedDate(name string, optional bool) string {
	value, err := findValue(name, p.currentRecords, p.headers, optional)
	if err != nil {
		p.errors = append(p.errors, err)
		return ""
	}
	if value == nil {
		return ""
	}
	str := strings.TrimSpace(*value)
	if len(str) == 0 {
		return ""
	}
	if _, err = time.Parse("20060102", str); err != nil {
		p.errors = append(p.errors, csvError(name, err))
		return ""
	}
	return str
}

// getError retrieve last error encountered while parsing csv file
func (p *feedFileParser) getError() error {
	if len(p.errors) > 0 {
		return fmt.Errorf("in file %v, line %v: %v", p.Filename, p.line, p.errors)
	}
	return nil
}

// addParseError appends error to list of parsing errors encountered in csv file
func (p *feedFileParser) addParseError(err error) {
	p.errors = append(p.errors, err)
}

// nextLine moves csvReader one line forward
func (p *feedFileParser) nextLine() error {
	var err error
	p.currentRecords, err = p.csvReader.Read()
	p.line += 1
	return err
}

// find index of elements that matches name string. returns -1 if not found
func indexOf(name string, elements []string) int {
	for i, value := range elements {
		if name == value {
			return i
		}
	}
	return -1
}

// findValue retrieves string value from csv records
// returns nil if record isn't present and optional is true
func findValue(name string, records []string, headers []string, optional bool) (*string, error) {
	index := indexOf(name, headers)
	if index < 0 {
		if optional {
			return nil, nil
		}
		return nil, fmt.Errorf("unable to find header: %s", name)
	}
	if len(records) <= index {
		return nil, fmt.Errorf("records are too short to find header at %v named %s", index, name)
	}
	value := records[index]
	if len(value) == 0 && !optional {
		return nil, fmt.Errorf("missing required value in column %v", name)
	}
	return &value, nil
}

// csvError convenience method for formatting an error in csv file.
func csvError(name string, err error) error {
	return fmt.Errorf("unable to parse column %s, error: %v ", name, err)
}

// loadFeedRows iterates over all rows in feedFileParser and feeds them into rowReader.
// reading halts if an error occurs and the error is returned
func loadFeedRows(dsTx *feed.DataSetTransaction, parser *feedFileParser, rowReader feedRowReader) error {
	for {
		err := parser.nextLine()

		if err == io.EOF {
			break
		}
		if err != nil {
			return err
		}

		err = rowReader.addRow(parser, dsTx)

		if err != nil {
			parser.addParseError(err)
			return parser.getError()
		}
	}
	//flush the remaining items out of the row reader into the database
	return rowReader.flush(dsTx)
}

// loadFeedZipFile reads local zip file at localFeedFilePath, uncompresses the files inside and
// records each file it knows how to read.
// reading halts if an error occurs and the error is returned.
func loadFeedZipFile(log *log.Logger, dsTx *feed.DataSetTransaction, localFeedFilePath string) error {
	r, err := zip.OpenReader(localFeedFilePath)
	if err != nil {
		return err
	}
	defer func() {
		err := r.Close()
		if err != nil {
			log.Printf("unable to close zip file %s, error: %v", localFeedFilePath, err)
		}
	}()

	files, err := newFeedFiles(r)
	if err != nil {
		return err
	}

	return loadFeedFiles(log, files, dsTx)
}

// feedFiles holds all feed files that we know how to load
type feedFiles struct {
	routeFile    *zip.File
	stopFile     *zip.File
	calendarFile *zip.File
	tripFile     *zip.File
	stopTimeFile *zip.File
	shapeFile    *zip.File
}

// newFeedFiles locates known feed files in zipReader
// returns error if any files are missing
func newFeedFiles(zipReader *zip.ReadCloser) (*feedFiles, error) {
	files := feedFiles{}
	for _, f := range zipReader.File {
		if f.FileInfo().IsDir() {
			continue
		}
		switch f.Name {
		case "routes.txt":
			files.routeFile = f
		case "stops.txt":
			files.stopFile = f
		case "calendar.txt":
			files.calendarFile = f
		case "trips.txt":
			files.tripFile = f
		case "stop_times.txt":
			files.stopTimeFile = f
		case "shapes.txt":
			files.shapeFile = f
		}
	}
	missingFiles := getMissingFiles(&files)
	if len(missingFiles) > 0 {
		return nil, fmt.Errorf("feed zip file is missing the following file(s) %s",
			strings.Join(missingFiles, ","))
	}
	return &files, nil
}

// getMissingFiles checks feedFiles for required files and returns string list of missing files
func getMissingFiles(files *feedFiles) []string {
	missingFileNames := make([]string, 0)
	if files.routeFile == nil {
		missingFileNames = append(missingFileNames, "routes.txt")
	}
	if files.stopFile == nil {
		missingFileNames = append(missingFileNames, "stops.txt")
	}
	if files.calendarFile == nil {
		missingFileNames = append(missingFileNames, "calendar.txt")
	}
	if files.tripFile == nil {
		missingFileNames = append(missingFileNames, "trips.txt")
	}
	if files.stopTimeFile == nil {
		missingFileNames = append(missingFileNames, "stop_times.txt")
	}
	if files.shapeFile == nil {
		missingFileNames = append(missingFileNames, "shapes.txt")
	}
	return missingFileNames
}

//loadFeedFiles loads feedFiles in order required by feedRowReaders
func loadFeedFiles(log *log.Logger, files *feedFiles, dsTx *feed.DataSetTransaction) error {
	loads := []struct {
		file      *zip.File
		rowReader feedRowReader
	}{
		{files.routeFile, newRouteRowReader()},
		{files.stopFile, newStopRowReader()},
		{files.calendarFile, newCalendarRowReader()},
		{files.shapeFile, newShapeRowReader()},
		{files.tripFile, newTripRowReader()},
		{files.stopTimeFile, newStopTimeRowReader()},
	}
	for _, load := range loads {
		err := loadFeedFile(log, dsTx, load.rowReader, load.file)
		if err != nil {
			return err
		}
	}
	return nil
}

// loadFeedFile loads one zipped feed file and reads it with feedRowReader
func loadFeedFile(log *log.Logger, dsTx *feed.DataSetTransaction, rowReader feedRowReader, f *zip.File) error {
	start := time.Now()
	rc, err := f.Open()
	if err != nil {
		return err
	}
	parser, err := makeFeedFileParser(rc, f.Name)
	if err != nil {
		return err
	}
	log.Printf("Loading %s\n", parser.Filename)
	err = loadFeedRows(dsTx, parser, rowReader)
	if err != nil {
		return err
	}
	err = rc.Close()
	if err != nil {
		return err
	}
	log.Printf("Loaded %d rows in file %s in %d seconds\n", parser.line, parser.Filename,
		time.Now().Unix()-start.Unix())
	return nil
}
