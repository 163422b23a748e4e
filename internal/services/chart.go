package services

import (
	"sort"

	"myhealth-server/internal/models"
	"myhealth-server/internal/vitals"
)

// ChartDateLayout is the label format of chart points.
const ChartDateLayout = "02/01 15:04"

// ChartPoint is one plotted reading.
type ChartPoint struct {
	Date      string      `json:"date"`
	Type      vitals.Kind `json:"type"`
	Val1      float64     `json:"val1"`
	Val2      *float64    `json:"val2,omitempty"`
	Timestamp int64       `json:"timestamp"`
}

// ChartSeries keeps the perKind most recent readings of each kind and returns
// them as points in chronological order.
func ChartSeries(ms []models.Measurement, perKind int) []ChartPoint {
	byKind := make(map[vitals.Kind][]models.Measurement, len(vitals.Kinds))
	for _, m := range ms {
		byKind[m.Kind] = append(byKind[m.Kind], m)
	}

	points := []ChartPoint{}
	for _, kind := range vitals.Kinds {
		group := byKind[kind]
		sort.SliceStable(group, func(i, j int) bool {
			return group[i].RecordedAt.After(group[j].RecordedAt)
		})
		if perKind > 0 && len(group) > perKind {
			group = group[:perKind]
		}
		for _, m := range group {
			points = append(points, ChartPoint{
				Date:      m.RecordedAt.Format(ChartDateLayout),
				Type:      m.Kind,
				Val1:      m.PrimaryValue,
				Val2:      m.SecondaryValue,
				Timestamp: m.RecordedAt.Unix(),
			})
		}
	}
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Timestamp < points[j].Timestamp
	})
	return points
}
