package decision

import "regexp"

// matchScope selects which side of the exchange a category is tested
// against. Demoting categories look at the reply (information-dense replies
// read poorly as audio); promoting categories may fire on either side.
type matchScope int

const (
	scopeReply matchScope = iota
	scopeUser
	scopeEither
)

// category is one row of the lexical classification table. Adding a new
// signal means adding a row here; the analyzer and engine stay untouched.
type category struct {
	factor string
	re     *regexp.Regexp
	weight float64
	scope  matchScope
}

var (
	rePrices     = regexp.MustCompile(`(?i)\$|precio|costo|cuanto|cost|barato|caro|vale|cotiz`)
	reLists      = regexp.MustCompile(`(?i)servicio|tratamiento|procedimiento|ofrec|disponible`)
	reNumbers    = regexp.MustCompile(`(?i)\d+.*\$|\$.*\d+|lista.*\d+|opcion.*\d+`)
	reComparison = regexp.MustCompile(`(?i)versus|vs|mejor|diferencia|comparar`)

	reGreeting  = regexp.MustCompile(`(?i)hola|buenos|buenas|que tal|saludos`)
	reObjection = regexp.MustCompile(`(?i)caro|expensive|pensarlo|despues|luego|maybe|dificil|complicado`)
	reEmotional = regexp.MustCompile(`(?i)ayuda|necesito|problema|urgente|preocup|nerv|ansio`)
	reClosing   = regexp.MustCompile(`(?i)cuando|empezar|reservar|agendar|cita|disponible.*hoy|rapidamente`)
	reSchedule  = regexp.MustCompile(`(?i)agendar|reservar|cuando.*empezar`)
)

// contentCategories drives AnalyzeContent. Order matters only for the
// factor list in the breakdown, not for the score.
var contentCategories = []category{
	{factor: "contains_prices", re: rePrices, weight: -0.3, scope: scopeReply},
	{factor: "contains_lists", re: reLists, weight: -0.2, scope: scopeReply},
	{factor: "contains_numbers", re: reNumbers, weight: -0.25, scope: scopeReply},
	{factor: "greeting_detected", re: reGreeting, weight: 0.3, scope: scopeEither},
	{factor: "objection_handling", re: reObjection, weight: 0.4, scope: scopeUser},
	{factor: "emotional_content", re: reEmotional, weight: 0.3, scope: scopeUser},
	{factor: "closing_opportunity", re: reClosing, weight: 0.35, scope: scopeEither},
}
