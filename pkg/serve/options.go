package serve

type Options struct {
	Listen    string
	Workspace string
	TLS       *TLSOptions
	OIDC      *OIDCOptions
}

type TLSOptions struct {
	CertFile string
	KeyFile  string
}

type OIDCOptions struct {
	Issuer string
}

func DefaultOptions() *Options {
	return &Options{
		Listen:    ":8080",
		Workspace: ".",
		TLS:       &TLSOptions{},
		OIDC:      &OIDCOptions{},
	}
}
