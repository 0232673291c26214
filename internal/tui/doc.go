// Package tui implements the full-screen terminal client for the carbon
// footprint tracker.
//
// Built on Bubble Tea, every screen is a Model-Update-View triple and all
// network work runs as tea.Cmd functions whose results come back as
// messages. Screens never block.
//
// # Screens
//
//   - Login, Register, Forgot Password: account forms
//   - Menu: entry point after login
//   - Add Item: category/item-type column plus the dynamic item form
//   - View Data: date range inputs and the stacked daily chart
//   - Help: usage guide rendered from markdown with glamour
//
// All screens use RenderApplicationContainer for the shared header, content
// area and key help footer.
//
// # Status banners
//
// The application owns a single tracker.MessageBox. Showing a banner
// replaces the previous one. Timed banners schedule a bannerClearMsg tagged
// with their sequence number, so an old timer never hides a newer banner.
// Item form banners clear after three seconds and chart banners after four;
// account banners stay until replaced.
//
// # Lookups
//
// Item and activity lookups are numbered with tracker.Generation. A
// response whose number is no longer current is dropped, so switching item
// type quickly always shows the form for the last choice. Leaving a screen
// makes its outstanding lookups stale.
//
// # Usage Example
//
//	client, _ := api.NewClient(settings.Server.URL)
//	err := tui.Run(tui.Options{
//	    Backend:  client,
//	    Settings: settings,
//	})
package tui
