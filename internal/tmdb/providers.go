package tmdb

import (
	"strconv"
	"strings"
)

// TMDB watch-provider IDs for the OTT platforms that carry Malayalam content in India.
const (
	ProviderNetflix     = 8
	ProviderPrimeVideo  = 119
	ProviderSonyLIV     = 237
	ProviderZee5        = 232
	ProviderJioHotstar  = 433
	ProviderSunNXT      = 309
	ProviderManoramaMax = 542
)

// Providers lists all watch providers of interest, in filter order.
var Providers = []int{
	ProviderNetflix,
	ProviderPrimeVideo,
	ProviderSonyLIV,
	ProviderZee5,
	ProviderJioHotstar,
	ProviderSunNXT,
	ProviderManoramaMax,
}

var providerNames = map[int]string{
	ProviderNetflix:     "Netflix",
	ProviderPrimeVideo:  "Amazon Prime Video",
	ProviderSonyLIV:     "SonyLIV",
	ProviderZee5:        "ZEE5",
	ProviderJioHotstar:  "JioHotstar",
	ProviderSunNXT:      "Sun NXT",
	ProviderManoramaMax: "ManoramaMAX",
}

// ProviderList returns the combined "with_watch_providers" filter value,
// e.g. "8|119|237". The pipe means OR in the TMDB discover API.
func ProviderList() string {
	parts := make([]string, len(Providers))
	for i, id := range Providers {
		parts[i] = strconv.Itoa(id)
	}
	return strings.Join(parts, "|")
}

// ProviderName returns the display name for a watch-provider ID.
func ProviderName(id int) (string, bool) {
	name, ok := providerNames[id]
	return name, ok
}

// KnownProvider reports whether id is one of the providers of interest.
func KnownProvider(id int) bool {
	_, ok := providerNames[id]
	return ok
}
