// Package content holds the static informational datasets served by the
// read-only screens. The data is compiled in so the bot works without any
// backing store.
package content

// QA is a single frequently asked question with its answer.
type QA struct {
	ID       int
	Question string
	Answer   string
}

// FAQCategory groups related questions under a heading.
type FAQCategory struct {
	Name      string
	Questions []QA
}

// FAQ returns the voter FAQ grouped by category. The slice is shared and must
// not be mutated by callers.
func FAQ() []FAQCategory {
	return faqData
}

var faqData = []FAQCategory{
	{
		Name: "Voter Registration & Eligibility",
		Questions: []QA{
			{
				ID:       1,
				Question: "Who is eligible to vote in India?",
				Answer:   "Any Indian citizen who has completed 18 years of age on the qualifying date (January 1st of the year of revision of electoral roll) and is not disqualified under any law is eligible to vote.",
			},
			{
				ID:       2,
				Question: "How can I check if I'm registered to vote?",
				Answer:   "You can check your voter registration status on the National Voters' Service Portal (NVSP) at nvsp.in or through the Voter Helpline App. You need your details like name, father's name, age, or EPIC number.",
			},
			{
				ID:       3,
				Question: "What documents do I need to register as a voter?",
				Answer:   "You need proof of identity (Aadhaar, Passport, Driving License, etc.), proof of address, and proof of age. Form 6 needs to be filled for new registration.",
			},
		},
	},
	{
		Name: "Before Election Day",
		Questions: []QA{
			{
				ID:       4,
				Question: "How do I find my polling station?",
				Answer:   "You can find your polling station details through the Voter Helpline App, NVSP portal, or by checking your Voter ID card. The polling station address is printed on your EPIC card.",
			},
			{
				ID:       5,
				Question: "What documents should I carry on election day?",
				Answer:   "Carry any one of these photo identity documents: Voter ID (EPIC), Aadhaar Card, Passport, Driving License, PAN Card, Service Identity Card, Passbook with photograph issued by Bank/Post Office, Health Insurance Smart Card, MGNREGA Job Card, or Pension Document with photograph.",
			},
			{
				ID:       6,
				Question: "Can I vote if I forget my ID card?",
				Answer:   "No, carrying a valid photo identity document is mandatory for voting. Without proper ID, you will not be allowed to vote.",
			},
		},
	},
	{
		Name: "On Election Day",
		Questions: []QA{
			{
				ID:       7,
				Question: "What are the polling hours?",
				Answer:   "Generally, polling is conducted from 7:00 AM to 6:00 PM. However, timings may vary in certain constituencies. Check your local election commission notification for exact timings.",
			},
			{
				ID:       8,
				Question: "What is the voting process?",
				Answer:   "1. Queue at your polling station\n2. Show your photo ID to the polling officer\n3. Get your finger marked with indelible ink\n4. Sign/put thumb impression in the register\n5. Receive ballot paper or use EVM\n6. Cast your vote in secret\n7. Verify VVPAT slip\n8. Exit the polling station",
			},
			{
				ID:       9,
				Question: "What is VVPAT and why is it important?",
				Answer:   "VVPAT (Voter Verified Paper Audit Trail) is a device that allows voters to verify that their vote was cast correctly. After pressing the button on EVM, a printed slip shows your chosen candidate for 7 seconds before dropping into a sealed box.",
			},
			{
				ID:       10,
				Question: "Can I use my mobile phone inside the polling booth?",
				Answer:   "No, mobile phones are strictly prohibited inside the polling booth. You cannot take photos or videos of your ballot or the voting process.",
			},
		},
	},
	{
		Name: "Voter Rights & NOTA",
		Questions: []QA{
			{
				ID:       11,
				Question: "What is NOTA?",
				Answer:   "NOTA stands for 'None of The Above'. It's an option that allows voters to officially register their rejection of all candidates. The NOTA button is the last option on the EVM.",
			},
			{
				ID:       12,
				Question: "What are my rights as a voter?",
				Answer:   "Your rights include: Right to vote freely without influence, Right to know about candidates, Right to vote in secret, Right to accessibility if you're differently-abled, Right to get assistance if you're 80+ years or have disabilities, and Right to complain about election-related issues.",
			},
			{
				ID:       13,
				Question: "Can someone help me vote if I have disabilities?",
				Answer:   "Yes, voters with disabilities, blindness, or those above 80 years can take a companion to help them vote. The companion must be above 18 years and carry valid ID. Blind voters can also use Braille-enabled EVMs.",
			},
		},
	},
	{
		Name: "Prohibited Activities",
		Questions: []QA{
			{
				ID:       14,
				Question: "What activities are prohibited on election day?",
				Answer:   "Prohibited activities include: Campaigning within 200 meters of polling station, Carrying mobile phones inside polling booth, Taking photos/videos of ballot, Accepting money/gifts for votes, Consuming or distributing liquor, Creating disturbance at polling station.",
			},
			{
				ID:       15,
				Question: "Can I campaign for my candidate on election day?",
				Answer:   "No, all campaigning activities must stop 48 hours before polling begins. No campaigning is allowed on election day, especially within 200 meters of any polling station.",
			},
			{
				ID:       16,
				Question: "What happens if I try to vote twice?",
				Answer:   "Attempting to vote more than once is a serious electoral offense. The indelible ink on your finger prevents multiple voting, and if caught, you can face legal action including imprisonment.",
			},
		},
	},
	{
		Name: "Special Circumstances",
		Questions: []QA{
			{
				ID:       17,
				Question: "What if I'm posted away from my home constituency?",
				Answer:   "You can apply for postal ballot if you're in essential services, or you can get your vote transferred to your current location constituency through Form 8A before the deadline.",
			},
			{
				ID:       18,
				Question: "Can I vote if I'm in quarantine or have COVID-19?",
				Answer:   "Special provisions are made during health emergencies. COVID-positive voters can vote in the last hour of polling with proper protective equipment. Check with local election authorities for current guidelines.",
			},
			{
				ID:       19,
				Question: "What should I do if I face problems at the polling station?",
				Answer:   "You can complain to the Presiding Officer at the polling station, contact the Returning Officer, call the election helpline, or use the cVIGIL app to report violations immediately.",
			},
		},
	},
}
