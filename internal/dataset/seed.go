package dataset

import "biaslens/internal/domain"

var seedNeutral = []string{
	"The city council voted six to three on Tuesday to approve the annual budget, which allocates funds for road repairs and public libraries.",
	"According to the national statistics office, unemployment remained at 4.1 percent in March, unchanged from the previous month.",
	"The company reported quarterly revenue of 2.3 billion dollars and said it expects similar results in the next quarter.",
	"Officials confirmed that the bridge will close for maintenance from June 3 to June 17, with detours posted on nearby streets.",
	"The study, published in a peer reviewed journal, followed 1,200 participants over five years and measured changes in blood pressure.",
	"Both parties submitted amendments to the bill, and the committee scheduled a hearing to review the proposals next week.",
	"The weather service forecasts light rain across the region on Friday, with temperatures between 12 and 18 degrees.",
	"The central bank held interest rates steady, citing stable inflation data and moderate growth in consumer spending.",
	"Researchers at the university announced the launch of a satellite designed to monitor coastal erosion and sea level changes.",
	"The museum will extend its opening hours during the summer and offer guided tours in three languages.",
}

var seedSlightlyBiased = []string{
	"The council finally approved the budget, though critics say the long overdue road repairs still receive too little attention.",
	"Unemployment held at 4.1 percent in March, a sign that the administration's economic plan may be starting to pay off.",
	"The company posted solid revenue, but some analysts question whether its ambitious expansion strategy is really sustainable.",
	"Residents will once again have to put up with detours as the aging bridge closes for yet another round of repairs.",
	"The promising study adds to growing evidence that lifestyle changes matter, although skeptics will likely downplay the findings.",
	"Lawmakers traded amendments on the bill, with the opposition appearing more interested in delay than in real solutions.",
	"The central bank kept rates steady, a cautious move that may frustrate homeowners hoping for some relief.",
	"The senator's speech was well received by supporters, even if her critics found it short on specifics.",
	"The new policy is a modest step in the right direction, but many families will wonder why it took so long.",
	"Supporters praised the reform as overdue, while opponents raised questions that the government has yet to fully answer.",
}

var seedHighlyBiased = []string{
	"The corrupt council rammed through a disastrous budget that betrays hardworking taxpayers and rewards its cronies.",
	"This reckless administration keeps lying about the economy while ordinary families are crushed by its failed policies.",
	"The greedy corporation is shamelessly exploiting workers to line the pockets of its billionaire executives.",
	"Incompetent officials have let the crumbling bridge become a national disgrace, and they clearly do not care who gets hurt.",
	"So called experts are pushing another junk study to scare the public and force their radical agenda on everyone.",
	"The extremist opposition is destroying the country and will stop at nothing to sabotage every decent reform.",
	"The out of control central bank is wrecking the economy and robbing savers blind with its outrageous decisions.",
	"The senator delivered a shameful, dishonest tirade that proves she is a dangerous threat to our democracy.",
	"This outrageous policy is an absolute catastrophe that only a totally clueless government could ever support.",
	"Radical activists and their media allies are spreading vicious propaganda to silence anyone who dares to disagree.",
}

// SeedRows returns the built-in balanced fallback corpus. Every example appears
// twice so token counts rise without changing class balance.
func SeedRows() []domain.DatasetRow {
	groups := []struct {
		label domain.Label
		texts []string
	}{
		{domain.Neutral, seedNeutral},
		{domain.SlightlyBiased, seedSlightlyBiased},
		{domain.HighlyBiased, seedHighlyBiased},
	}

	var rows []domain.DatasetRow
	for _, g := range groups {
		for _, text := range g.texts {
			rows = append(rows, domain.DatasetRow{Text: text, Label: g.label})
		}
	}
	return append(rows, rows...)
}
