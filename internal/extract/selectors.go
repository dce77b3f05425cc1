package extract

// Selector strings for the source site. These live here, and only here —
// the discovery, normalization, and assembly layers never see them.
const (
	selCookieAccept    = `button[class^="_2hTJ5th4dIYlveipSEMYHH BfdVlAo_cgSVjDUegen0F"]`
	selCloseAd         = `a.closeBtn`
	selSeasonDropdown  = `[aria-labelledby="dd-compSeasons"][role="button"]`
	selSeasonOptions   = `ul[data-dropdown-list="compSeasons"] li`
	selFixturesList    = `div.fixtures__matches-list`
	selMatchDate       = `div.matchDate.renderMatchDateContainer`
	selStadium         = `div.stadium`
	selScorebox        = `div.scoreboxContainer`
	selHomeShortCode   = `div.scoreboxContainer div.team.home span.short`
	selFullTimeScore   = `div.score.fullTime`
	selStatsTab        = `li[data-tab-index="2"]`
	selStatsTable      = `tbody.matchCentreStatsContainer`
	selStatsRows       = `tbody.matchCentreStatsContainer tr`
)

// selFixtureLinks returns the selector for the link divs of the club's
// fixtures on the given side ("data-home" or "data-away").
func selFixtureLinks(sideAttr, club string) string {
	return `li[` + sideAttr + `="` + club + `"] > div`
}
