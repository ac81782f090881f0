package domain

const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

type User struct {
	Email     string `json:"email"`
	Role      string `json:"role"`
	CollegeID string `json:"college_id,omitempty"`
}

func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

type DashboardStats struct {
	TotalEvents         int               `json:"total_events"`
	TotalColleges       int               `json:"total_colleges"`
	TotalParticipations int               `json:"total_participations"`
	TotalPointsAwarded  int               `json:"total_points_awarded"`
	EventsByType        map[EventType]int `json:"events_by_type"`
}
