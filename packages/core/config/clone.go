package config

// Clone returns a deep copy of c.
func (c *SiteConfig) Clone() *SiteConfig {
	if c == nil {
		return nil
	}
	out := *c

	out.I18n.Locales = cloneStrings(c.I18n.Locales)

	navbar := &out.ThemeConfig.Navbar
	if c.ThemeConfig.Navbar.Logo != nil {
		logo := *c.ThemeConfig.Navbar.Logo
		navbar.Logo = &logo
	}
	if c.ThemeConfig.Navbar.Items != nil {
		navbar.Items = make([]NavItem, len(c.ThemeConfig.Navbar.Items))
		copy(navbar.Items, c.ThemeConfig.Navbar.Items)
	}

	footer := &out.ThemeConfig.Footer
	if c.ThemeConfig.Footer.Links != nil {
		footer.Links = make([]FooterColumn, len(c.ThemeConfig.Footer.Links))
		for i, column := range c.ThemeConfig.Footer.Links {
			footer.Links[i] = column
			if column.Items != nil {
				footer.Links[i].Items = make([]FooterLink, len(column.Items))
				copy(footer.Links[i].Items, column.Items)
			}
		}
	}

	out.ThemeConfig.Prism.AdditionalLanguages = cloneStrings(c.ThemeConfig.Prism.AdditionalLanguages)

	colorMode := &out.ThemeConfig.ColorMode
	colorMode.DisableSwitch = cloneBool(c.ThemeConfig.ColorMode.DisableSwitch)
	colorMode.RespectPrefersColorScheme = cloneBool(c.ThemeConfig.ColorMode.RespectPrefersColorScheme)

	return &out
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}

func cloneBool(b *bool) *bool {
	if b == nil {
		return nil
	}
	v := *b
	return &v
}
