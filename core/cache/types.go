package cache

import "time"

// GenerationInfo tracks the last content written to an output file.
type GenerationInfo struct {
	OutputPath  string    `json:"output_path"`
	ContentHash string    `json:"content_hash"`
	ClassName   string    `json:"class_name"`
	GeneratedAt time.Time `json:"generated_at"`
}

// CacheStats provides metrics about cache performance
type CacheStats struct {
	TotalFiles int       `json:"total_files"`
	Hits       int64     `json:"hits"`
	Misses     int64     `json:"misses"`
	HitRate    float64   `json:"hit_rate"`
	LastUpdate time.Time `json:"last_update"`
}

func (s *CacheStats) CalculateHitRate() {
	total := s.Hits + s.Misses
	if total > 0 {
		s.HitRate = float64(s.Hits) / float64(total) * 100
	} else {
		s.HitRate = 0
	}
}
