package generator

import (
	"strings"
	"text/template"
)

// VhostData holds the values substituted into the virtual host template.
type VhostData struct {
	Host         string // ServerName
	DocumentRoot string // <container web root>/<project>/public
	Upstream     string // PHP-FPM address, host:port
}

// apacheValue rejects characters that would break out of a directive.
func apacheValue(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\n', '\r', '"', '<', '>':
			return -1
		}
		return r
	}, s)
}

const vhostTemplateText = `<VirtualHost *:80>
    ServerName {{apache .Host}}

    DocumentRoot {{apache .DocumentRoot}}

    <Directory {{apache .DocumentRoot}}>
        AllowOverride All
        Require all granted
        DirectoryIndex index.php index.html
    </Directory>

    <FilesMatch \.php$>
        SetHandler "proxy:fcgi://{{apache .Upstream}}"
    </FilesMatch>
</VirtualHost>
`

var vhostTemplate *template.Template

func init() {
	funcs := template.FuncMap{
		"apache": apacheValue,
	}
	vhostTemplate = template.Must(template.New("vhost").Funcs(funcs).Parse(vhostTemplateText))
}
