package scene2d

// Scene2D is the complete 2D output of one decomposition, ready for a
// drawing or mesh-building layer.
type Scene2D struct {
	Metadata    Metadata       `json:"metadata"`
	Outline     [][2]float64   `json:"outline"`
	OuterOffset [][2]float64   `json:"outer_offset"`
	InnerOffset [][2]float64   `json:"inner_offset"`
	Lines       []Line2D       `json:"lines"`
	Reinforcers []Loop2D       `json:"reinforcers"`
	FinPieces   []Loop2D       `json:"fin_pieces"`
	Walls       WallCollection `json:"walls"`
}

// Metadata holds panel-level summary data.
type Metadata struct {
	Name            string     `json:"name"`
	Space           Space      `json:"space"`
	EdgeCount       int        `json:"edge_count"`
	SubPointCount   int        `json:"sub_point_count"`
	BlockCount      int        `json:"block_count"`
	DegenerateEdges []int      `json:"degenerate_edges,omitempty"`
	Width           float64    `json:"width"`
	Height          float64    `json:"height"`
	Area            float64    `json:"area"`
	Perimeter       float64    `json:"perimeter"`
	// Centroid is in the scene's own space, for centring a preview.
	Centroid        [2]float64 `json:"centroid"`
	ShortestEdge    int        `json:"shortest_edge"`
	ShortestLength  float64    `json:"shortest_length"`
	PointDistance   float64    `json:"point_distance"`
	FinHalfWidth    float64    `json:"fin_half_width"`
	WallThickness   float64    `json:"wall_thickness"`
	GeneratedAt     string     `json:"generated_at"`
}

// Line2D is one edge with its preview markers and tiles.
type Line2D struct {
	Index      int          `json:"index"`
	Angle      float64      `json:"angle"`
	Length     float64      `json:"length"`
	SubPoints  [][2]float64 `json:"sub_points"`
	Blocks     []Loop2D     `json:"blocks"`
	Corner     *Loop2D      `json:"corner,omitempty"`
	Degenerate bool         `json:"degenerate,omitempty"`
}

// Loop2D is a closed outline; the last point connects back to the first.
type Loop2D struct {
	ID     string       `json:"id"`
	Points [][2]float64 `json:"points"`
}

// WallCollection groups the wall strips by side.
type WallCollection struct {
	Outer []Loop2D `json:"outer"`
	Inner []Loop2D `json:"inner"`
}
