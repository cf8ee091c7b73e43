package models

// Read-only aggregate views produced by the analytics service. Percentages
// and averages are rounded to 2 decimal places at the point of output.

type DashboardOverview struct {
	TotalRevenue     float64 `json:"total_revenue"`
	TotalStudents    int64   `json:"total_students"`
	TotalEnrollments int64   `json:"total_enrollments"`
	AvgCompletion    float64 `json:"avg_completion_rate"`
	AvgRating        float64 `json:"avg_rating"`
	TotalCourses     int     `json:"total_courses"`
}

type RevenuePoint struct {
	Date    string  `json:"date"`
	Revenue float64 `json:"revenue"`
}

type InstructorDashboard struct {
	Overview          DashboardOverview  `json:"overview"`
	RecentEnrollments []CourseEnrollment `json:"recent_enrollments"`
	TopCourses        []Course           `json:"top_courses"`
	RevenueOverTime   []RevenuePoint     `json:"revenue_over_time"`
}

type EnrollmentStats struct {
	Total     int64 `json:"total"`
	Active    int64 `json:"active"`
	Completed int64 `json:"completed"`
}

type CompletionStats struct {
	AvgProgress    float64 `json:"avg_progress"`
	CompletionRate float64 `json:"completion_rate"`
	DropoffRate    float64 `json:"dropoff_rate"`
}

type QuizPerformance struct {
	AvgScore      float64 `json:"avg_score"`
	PassRate      float64 `json:"pass_rate"`
	TotalAttempts int     `json:"total_attempts"`
}

type StudentEngagement struct {
	ActiveStudents    int64 `json:"active_students"`
	TotalInteractions int64 `json:"total_interactions"`
}

type RevenueStats struct {
	TotalRevenue      float64 `json:"total_revenue"`
	InstructorRevenue float64 `json:"instructor_revenue"`
	TotalSales        int64   `json:"total_sales"`
}

type ReviewStats struct {
	TotalReviews       int           `json:"total_reviews"`
	AvgRating          float64       `json:"avg_rating"`
	RatingDistribution map[int]int64 `json:"rating_distribution"`
}

type CourseAnalytics struct {
	EnrollmentStats   EnrollmentStats   `json:"enrollment_stats"`
	CompletionStats   CompletionStats   `json:"completion_stats"`
	QuizPerformance   QuizPerformance   `json:"quiz_performance"`
	StudentEngagement StudentEngagement `json:"student_engagement"`
	RevenueStats      RevenueStats      `json:"revenue_stats"`
	ReviewStats       ReviewStats       `json:"review_stats"`
}

// StudentDashboard summarizes a learner's own enrollments.
type StudentDashboard struct {
	TotalCourses      int                `json:"total_courses"`
	CompletedCourses  int                `json:"completed_courses"`
	InProgressCourses int                `json:"in_progress_courses"`
	Enrollments       []CourseEnrollment `json:"enrollments"`
}
