// Package kraken implements the Kraken Spot REST API as a stateless request
// bridge: public market data over GET, private trading and account
// endpoints over signed POST.
//
// Every call returns the envelope's result mapping unchanged or a *core.Error
// describing why it could not.
//
// Kraken REST API Documentation: https://docs.kraken.com/api/docs/rest-api/
package kraken
