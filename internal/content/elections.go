package content

// Election describes an upcoming or registration-phase election event.
type Election struct {
	ID             int
	Title          string
	Date           string
	Time           string
	Location       string
	Type           string
	Status         string
	Description    string
	Candidates     int
	Constituencies int
	EligibleVoters string
}

// Election status values.
const (
	StatusUpcoming     = "upcoming"
	StatusRegistration = "registration"
)

// UpcomingElections returns the published election calendar.
func UpcomingElections() []Election {
	return electionsData
}

var electionsData = []Election{
	{
		ID:             1,
		Title:          "General Elections 2024",
		Date:           "2024-07-15",
		Time:           "09:00 AM - 06:00 PM",
		Location:       "All Constituencies",
		Type:           "General",
		Status:         StatusUpcoming,
		Description:    "National parliamentary elections to elect representatives for the next 5 years.",
		Candidates:     1247,
		Constituencies: 543,
		EligibleVoters: "970 Million",
	},
	{
		ID:             2,
		Title:          "State Assembly Elections - Karnataka",
		Date:           "2024-08-22",
		Time:           "08:00 AM - 05:00 PM",
		Location:       "Karnataka State",
		Type:           "State",
		Status:         StatusUpcoming,
		Description:    "State legislative assembly elections for Karnataka constituencies.",
		Candidates:     156,
		Constituencies: 224,
		EligibleVoters: "50 Million",
	},
	{
		ID:             3,
		Title:          "Municipal Corporation Elections",
		Date:           "2024-09-10",
		Time:           "09:00 AM - 05:00 PM",
		Location:       "Delhi NCR",
		Type:           "Local",
		Status:         StatusUpcoming,
		Description:    "Local municipal corporation elections for Delhi and surrounding areas.",
		Candidates:     89,
		Constituencies: 75,
		EligibleVoters: "15 Million",
	},
	{
		ID:             4,
		Title:          "Panchayat Elections",
		Date:           "2024-10-05",
		Time:           "10:00 AM - 04:00 PM",
		Location:       "Rural Areas - UP",
		Type:           "Rural",
		Status:         StatusRegistration,
		Description:    "Village panchayat elections for rural development and governance.",
		Candidates:     234,
		Constituencies: 180,
		EligibleVoters: "25 Million",
	},
}
