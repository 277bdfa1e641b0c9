package game

// HealthStatus buckets the player's health.
type HealthStatus int

const (
	Sleep HealthStatus = iota
	Woozy
	Fatigued
	Awake
)

func HealthStatusFor(health int) HealthStatus {
	switch {
	case health <= 0:
		return Sleep
	case health < 40:
		return Woozy
	case health < 70:
		return Fatigued
	default:
		return Awake
	}
}

func (s HealthStatus) String() string {
	switch s {
	case Sleep:
		return "SLEEP"
	case Woozy:
		return "WOOZY"
	case Fatigued:
		return "FATIGUED"
	case Awake:
		return "AWAKE"
	default:
		return "UNKNOWN"
	}
}

// PlayerRank buckets the player's score.
type PlayerRank int

const (
	Novice PlayerRank = iota
	Intermediate
	Expert
	Legend
)

func RankFor(score float64) PlayerRank {
	switch {
	case score < 60:
		return Novice
	case score < 120:
		return Intermediate
	case score < 200:
		return Expert
	default:
		return Legend
	}
}

func (r PlayerRank) String() string {
	switch r {
	case Novice:
		return "NOVICE"
	case Intermediate:
		return "INTERMEDIATE"
	case Expert:
		return "EXPERT"
	case Legend:
		return "LEGEND"
	default:
		return "UNKNOWN"
	}
}
