package messages

const (
	BadStatusCodeMsg   = "API returned status code %d on URL %s"
	FailedToParseMsg   = "failed to parse API response"
	InvalidPayloadMsg  = "API returned a invalid payload"
	InvalidRegionMsg   = "invalid region"
	MatchNotFound      = "match not found"
	RequestFailedMsg   = "API request failed on URL %s"
	StoreFailureMsg    = "couldn't reach the database"
	NoMatchIdsProvided = "no match ids provided"
)
