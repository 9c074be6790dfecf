// Package credential attaches authentication material to outbound
// provider requests.
//
// Data providers differ in how they expect requests to authenticate:
// some take an API key header, some a static bearer token, and some a
// short-lived signed JWT. Each style is a Source, and Transport wires a
// Source into an http.Client so provider code never handles raw keys:
//
//	resolver := secret.NewResolver(true, secret.NewEnvProvider(""))
//	key := credential.NewAPIKey(credential.APIKeyConfig{
//		HeaderName: "X-CMC_PRO_API_KEY",
//		Value:      "secretref:env:COINMARKETCAP_KEY",
//		Resolver:   resolver,
//	})
//	client := &http.Client{Transport: credential.NewTransport(nil, key)}
//
// Key material is pulled through the secret package, so configuration
// carries references rather than values. Resolved credentials are held
// in memory only and must never be logged.
package credential
