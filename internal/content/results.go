package content

// PartySeats is one party's seat count in a state assembly.
type PartySeats struct {
	Party string
	Seats int
}

// StateResult is the latest assembly result for one state.
type StateResult struct {
	Key        string
	Name       string
	TotalSeats int
	Parties    []PartySeats
	CM         string
	Governor   string
}

// StateResults returns assembly results for all states, in display order.
func StateResults() []StateResult {
	return resultsData
}

// ResultForState looks up a state result by its key.
func ResultForState(key string) (StateResult, bool) {
	for _, s := range resultsData {
		if s.Key == key {
			return s, true
		}
	}
	return StateResult{}, false
}

var resultsData = []StateResult{
	{
		Key: "andhra-pradesh", Name: "Andhra Pradesh", TotalSeats: 175,
		Parties:  []PartySeats{{"TDP", 135}, {"JSP", 21}, {"YSRCP", 11}, {"BJP", 8}},
		CM:       "N. Chandrababu Naidu",
		Governor: "S. Abdul Nazeer",
	},
	{
		Key: "arunachal-pradesh", Name: "Arunachal Pradesh", TotalSeats: 60,
		Parties:  []PartySeats{{"BJP", 46}, {"NPP", 5}, {"Others", 5}, {"INC", 4}},
		CM:       "Pema Khandu",
		Governor: "Kaiwalya Trivikram Parnaik",
	},
	{
		Key: "assam", Name: "Assam", TotalSeats: 126,
		Parties:  []PartySeats{{"BJP", 60}, {"INC", 29}, {"AIUDF", 16}, {"AGP", 9}, {"UPPL", 6}, {"Others", 6}},
		CM:       "Himanta Biswa Sarma",
		Governor: "Lakshman Prasad Acharya",
	},
	{
		Key: "bihar", Name: "Bihar", TotalSeats: 243,
		Parties:  []PartySeats{{"RJD", 75}, {"BJP", 74}, {"JDU", 43}, {"Others", 32}, {"INC", 19}},
		CM:       "Nitish Kumar",
		Governor: "Rajendra Vishwanath Arlekar",
	},
	{
		Key: "chhattisgarh", Name: "Chhattisgarh", TotalSeats: 90,
		Parties:  []PartySeats{{"BJP", 54}, {"INC", 35}, {"Others", 1}},
		CM:       "Vishnu Deo Sai",
		Governor: "Ramen Deka",
	},
	{
		Key: "goa", Name: "Goa", TotalSeats: 40,
		Parties:  []PartySeats{{"BJP", 20}, {"INC", 11}, {"Others", 7}, {"AAP", 2}},
		CM:       "Pramod Sawant",
		Governor: "P. S. Sreedharan Pillai",
	},
	{
		Key: "gujarat", Name: "Gujarat", TotalSeats: 182,
		Parties:  []PartySeats{{"BJP", 156}, {"INC", 17}, {"AAP", 5}, {"Others", 4}},
		CM:       "Bhupendra Patel",
		Governor: "Acharya Devvrat",
	},
	{
		Key: "haryana", Name: "Haryana", TotalSeats: 90,
		Parties:  []PartySeats{{"BJP", 41}, {"INC", 37}, {"JJP", 10}, {"Others", 2}},
		CM:       "Nayab Singh Saini",
		Governor: "Bandaru Dattatreya",
	},
	{
		Key: "himachal-pradesh", Name: "Himachal Pradesh", TotalSeats: 68,
		Parties:  []PartySeats{{"INC", 40}, {"BJP", 25}, {"Others", 3}},
		CM:       "Sukhvinder Singh Sukhu",
		Governor: "Shiv Pratap Shukla",
	},
	{
		Key: "jharkhand", Name: "Jharkhand", TotalSeats: 81,
		Parties:  []PartySeats{{"JMM", 30}, {"BJP", 26}, {"INC", 16}, {"Others", 8}, {"RJD", 1}},
		CM:       "Hemant Soren",
		Governor: "Santosh Kumar Gangwar",
	},
	{
		Key: "karnataka", Name: "Karnataka", TotalSeats: 224,
		Parties:  []PartySeats{{"INC", 135}, {"BJP", 66}, {"JDS", 19}, {"Others", 4}},
		CM:       "Siddaramaiah",
		Governor: "Thawar Chand Gehlot",
	},
	{
		Key: "kerala", Name: "Kerala", TotalSeats: 140,
		Parties:  []PartySeats{{"LDF", 99}, {"UDF", 41}},
		CM:       "Pinarayi Vijayan",
		Governor: "Arif Mohammed Khan",
	},
	{
		Key: "madhya-pradesh", Name: "Madhya Pradesh", TotalSeats: 230,
		Parties:  []PartySeats{{"BJP", 163}, {"INC", 66}, {"Others", 1}},
		CM:       "Mohan Yadav",
		Governor: "Mangubhai C. Patel",
	},
	{
		Key: "maharashtra", Name: "Maharashtra", TotalSeats: 288,
		Parties:  []PartySeats{{"BJP", 132}, {"NCP", 41}, {"Shiv Sena", 40}, {"Others", 38}, {"INC", 37}},
		CM:       "Devendra Fadnavis",
		Governor: "C. P. Radhakrishnan",
	},
	{
		Key: "manipur", Name: "Manipur", TotalSeats: 60,
		Parties:  []PartySeats{{"BJP", 32}, {"Others", 10}, {"NPP", 7}, {"JDU", 6}, {"INC", 5}},
		CM:       "N. Biren Singh",
		Governor: "Vinod Kumar Duggal",
	},
	{
		Key: "meghalaya", Name: "Meghalaya", TotalSeats: 60,
		Parties:  []PartySeats{{"NPP", 28}, {"Others", 14}, {"UDP", 11}, {"INC", 5}, {"BJP", 2}},
		CM:       "Conrad Sangma",
		Governor: "C. H. Vijayashankar",
	},
	{
		Key: "mizoram", Name: "Mizoram", TotalSeats: 40,
		Parties:  []PartySeats{{"ZPM", 27}, {"MNF", 10}, {"BJP", 2}, {"INC", 1}},
		CM:       "Lalduhoma",
		Governor: "Hari Babu Kambhampati",
	},
	{
		Key: "nagaland", Name: "Nagaland", TotalSeats: 60,
		Parties:  []PartySeats{{"NDPP", 25}, {"Others", 16}, {"BJP", 12}, {"NCP", 7}},
		CM:       "Neiphiu Rio",
		Governor: "La. Ganesan",
	},
	{
		Key: "odisha", Name: "Odisha", TotalSeats: 147,
		Parties:  []PartySeats{{"BJP", 78}, {"BJD", 51}, {"INC", 14}, {"Others", 4}},
		CM:       "Mohan Charan Majhi",
		Governor: "Raghubar Das",
	},
	{
		Key: "punjab", Name: "Punjab", TotalSeats: 117,
		Parties:  []PartySeats{{"AAP", 92}, {"INC", 18}, {"SAD", 3}, {"BJP", 2}, {"Others", 2}},
		CM:       "Bhagwant Mann",
		Governor: "Gulab Chand Kataria",
	},
	{
		Key: "rajasthan", Name: "Rajasthan", TotalSeats: 200,
		Parties:  []PartySeats{{"BJP", 115}, {"INC", 69}, {"Others", 16}},
		CM:       "Bhajan Lal Sharma",
		Governor: "Haribhau Kisanrao Bagde",
	},
	{
		Key: "sikkim", Name: "Sikkim", TotalSeats: 32,
		Parties:  []PartySeats{{"SKM", 31}, {"SDF", 1}},
		CM:       "Prem Singh Tamang",
		Governor: "Om Prakash Mathur",
	},
	{
		Key: "tamil-nadu", Name: "Tamil Nadu", TotalSeats: 234,
		Parties:  []PartySeats{{"DMK", 133}, {"AIADMK", 66}, {"Others", 31}, {"BJP", 4}},
		CM:       "M. K. Stalin",
		Governor: "R. N. Ravi",
	},
	{
		Key: "telangana", Name: "Telangana", TotalSeats: 119,
		Parties:  []PartySeats{{"INC", 64}, {"BRS", 39}, {"BJP", 8}, {"Others", 8}},
		CM:       "A. Revanth Reddy",
		Governor: "Jishnu Dev Varma",
	},
	{
		Key: "tripura", Name: "Tripura", TotalSeats: 60,
		Parties:  []PartySeats{{"BJP", 32}, {"TMP", 13}, {"CPIM", 10}, {"Others", 5}},
		CM:       "Manik Saha",
		Governor: "Indrasena Reddy Nallu",
	},
	{
		Key: "uttar-pradesh", Name: "Uttar Pradesh", TotalSeats: 403,
		Parties:  []PartySeats{{"BJP", 255}, {"SP", 111}, {"Others", 27}, {"RLD", 8}, {"INC", 2}},
		CM:       "Yogi Adityanath",
		Governor: "Anandiben Patel",
	},
	{
		Key: "uttarakhand", Name: "Uttarakhand", TotalSeats: 70,
		Parties:  []PartySeats{{"BJP", 47}, {"INC", 19}, {"Others", 4}},
		CM:       "Pushkar Singh Dhami",
		Governor: "Gurmit Singh",
	},
	{
		Key: "west-bengal", Name: "West Bengal", TotalSeats: 294,
		Parties:  []PartySeats{{"AITC", 215}, {"BJP", 77}, {"Others", 2}, {"INC", 0}},
		CM:       "Mamata Banerjee",
		Governor: "C. V. Ananda Bose",
	},
}
