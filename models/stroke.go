package models

import "time"

// Stroke is one drawn path on a whiteboard. Points are [x, y] pairs in
// board coordinates, in the order they were drawn.
type Stroke struct {
    ProjectID string       `json:"project_id" bson:"project_id"`
    ClientID  string       `json:"client_id" bson:"client_id"`
    Points    [][2]float64 `json:"points" bson:"points"`
    Color     string       `json:"color" bson:"color"`
    Width     float64      `json:"width" bson:"width"`
    CreatedAt time.Time    `json:"created_at" bson:"created_at"`
}
