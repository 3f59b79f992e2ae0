package feedmanager

import (
	"reflect"
	"strings"
	"testing"

	"github.com/WanHafizuddin/KB-MyBasTracker-SimulatedLive/business/data/feed"
)

func Test_buildShapePoint(t *testing.T) {

	tests := []struct {
		name       string
		csvContent string
		want       *feed.ShapePoint
		wantErr    bool
	}{
		{
			name: "basic shape point parsed",
			csvContent: "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
				"KB01,6.125400,102.238100,1",
			want: &feed.ShapePoint{
				ShapeId:         "KB01",
				ShapePtLat:      6.1254,
				ShapePtLon:      102.2381,
				ShapePtSequence: 1,
			},
			wantErr: false,
		},
		{
			name: "error on missing required field (shape_pt_sequence)",
			csvContent: "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
				"KB01,6.125400,102.238100,",
			wantErr: true,
		},
		{
			name: "error on unparsable latitude",
			csvContent: "shape_id,shape_pt_lat,shape_pt_lon,shape_pt_sequence\n" +
				"KB01,north,102.238100,5",
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parser := makeTestParser(t, tt.csvContent)
			got, err := buildShapePoint(parser)
			if tt.wantErr {
				if err == nil {
					t.Errorf("%v: buildShapePoint() produced no error, but we want one", tt.name)
				}
				return
			} else if err != nil {
				t.Errorf("%v: buildShapePoint() error = %v, wantErr %v", tt.name, err, tt.wantErr)
				return
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildShapePoint() got = %+v, want %+v", got, tt.want)
			}
		})
	}
}

// makeTestParser builds a feedFileParser over csvContent positioned at the first data line
func makeTestParser(t *testing.T, csvContent string) *feedFileParser {
	t.Helper()
	parser, err := makeFeedFileParser(strings.NewReader(csvContent), "test.txt")
	if err != nil {
		t.Fatalf("Unable to make feedFileParser %s", err)
	}
	err = parser.nextLine()
	if err != nil {
		t.Fatalf("Unable to move feedFileParser to first line %s", err)
	}
	return parser
}
