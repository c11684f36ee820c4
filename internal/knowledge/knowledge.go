// Package knowledge holds the hand-curated recruitment facts the chat
// relay is allowed to answer from. Sections are selected by keyword
// containment against the visitor's question; the completion model is
// instructed to answer only from what was selected.
package knowledge

import "strings"

type Section struct {
	Name     string
	Keywords []string
	Content  string
}

// Persona is the fixed system instruction prefixed to every prompt.
const Persona = "You are a friendly recruitment assistant for the state trooper " +
	"recruitment program. Answer using only the reference sections provided. " +
	"If the question is outside the reference material, say so and suggest " +
	"contacting the recruiting office. Keep answers short and encouraging."

var sections = []Section{
	{
		Name:     "salary",
		Keywords: []string{"salary", "pay", "paid", "wage", "money", "earn", "income"},
		Content: "Cadets earn $58,000 during the academy. Starting salary after " +
			"graduation is $72,500, rising to $84,000 after four years of service. " +
			"Overtime, shift differential, and annual step increases apply on top.",
	},
	{
		Name:     "benefits",
		Keywords: []string{"benefit", "insurance", "pension", "retirement", "vacation", "leave", "health"},
		Content: "Benefits include full medical, dental, and vision coverage for " +
			"you and your family, a 20-year pension plan, 13 paid holidays, and " +
			"three weeks of vacation in your first year.",
	},
	{
		Name:     "requirements",
		Keywords: []string{"require", "requirement", "eligib", "qualify", "age", "degree", "education", "citizen"},
		Content: "Applicants must be 21 to 39 years old at appointment, hold a " +
			"high school diploma or GED, be a U.S. citizen, and hold a valid " +
			"driver's license. Sixty college credits or two years of military or " +
			"police service are required; college credit waivers exist for " +
			"military service.",
	},
	{
		Name:     "testing",
		Keywords: []string{"test", "exam", "written", "physical", "fitness", "polygraph", "psychological", "oral", "interview"},
		Content: "The selection process includes a written exam, an oral " +
			"interview, a physical fitness test (1.5 mile run, push-ups, " +
			"sit-ups), a polygraph, a psychological evaluation, and a full " +
			"background investigation. Practice tests for the written and " +
			"physical stages are available on this site.",
	},
	{
		Name:     "application",
		Keywords: []string{"apply", "application", "deadline", "how do i", "sign up", "register", "when"},
		Content: "Applications are open year-round through the online portal. " +
			"After you submit, a recruiter contacts you within five business " +
			"days to schedule your written exam. The next academy class starts " +
			"twice a year, in January and July.",
	},
	{
		Name:     "academy",
		Keywords: []string{"academy", "training", "cadet", "how long", "dorm", "live"},
		Content: "The academy is a 26-week residential program. Cadets live on " +
			"campus Monday through Friday and train in law, defensive tactics, " +
			"emergency vehicle operation, and firearms.",
	},
}

// Select returns the sections whose keywords appear in the question,
// preserving definition order. An empty result means the relay should
// answer from the persona alone.
func Select(question string) []Section {
	q := strings.ToLower(question)

	var matched []Section
	for _, s := range sections {
		for _, kw := range s.Keywords {
			if strings.Contains(q, kw) {
				matched = append(matched, s)
				break
			}
		}
	}
	return matched
}
