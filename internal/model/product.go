package model

// Param documents one key="value" parameter understood by the deploy
// script. The dispatcher never validates these; they only feed the
// usage text.
type Param struct {
	// Example is the key="value" sample shown in the usage column.
	Example string

	// Description is the one-line explanation next to the example.
	Description string
}

// Product describes one packaged variant of the deployment tool. Both
// variants share the dispatcher and differ in naming, version and a few
// delegate conventions.
type Product struct {
	// Binary is the installed command name and the directory name used
	// under the package manager's etc/, var/log/ and opt/ trees.
	Binary string

	// DisplayName is the human-readable product name for banners.
	DisplayName string

	// Version is the release version without the leading "v".
	Version string

	// Summary is the one-line description under the usage banner.
	Summary string

	// Tagline is the second line of the version banner.
	Tagline string

	// Homepage is the project URL shown at the end of the usage text.
	Homepage string

	// ExampleTeamID is used in the usage examples.
	ExampleTeamID string

	// ExampleAPIKeyPath is the api_key_path shown in the deploy example.
	// Empty omits the line, for variants that detect the key file in
	// apple_info/ themselves.
	ExampleAPIKeyPath string

	// Required and Optional document the delegate's parameters.
	Required []Param
	Optional []Param

	// RunFromInstallDir makes the delegate start in the install directory
	// instead of the caller's project directory.
	RunFromInstallDir bool
}

// AppleDeploy is the current "apple-deploy" package.
var AppleDeploy = Product{
	Binary:            "apple-deploy",
	DisplayName:       "Apple Deploy",
	Version:           "2.12.6",
	Summary:           "Enterprise-grade iOS TestFlight automation platform with Clean Architecture",
	Tagline:           "Built with ❤️  for iOS developers - Enhanced Clean Architecture",
	Homepage:          "https://github.com/snooky23/apple-deploy",
	ExampleTeamID:     "YOUR_TEAM_ID",
	ExampleAPIKeyPath: "AuthKey_ABC123.p8",
	Required: []Param{
		{`team_id="XXXXXXXXXX"`, "Apple Developer Team ID"},
		{`app_identifier="com.company.app"`, "Bundle identifier"},
		{`apple_id="dev@email.com"`, "Apple Developer email"},
		{`api_key_path="AuthKey_XXX.p8"`, "API key filename"},
		{`api_key_id="YOUR_KEY_ID"`, "App Store Connect API Key ID"},
		{`api_issuer_id="your-issuer-uuid"`, "API Issuer ID"},
		{`app_name="Your App"`, "Display name"},
		{`scheme="YourScheme"`, "Xcode scheme"},
	},
	Optional: []Param{
		{`version_bump="patch|minor|major"`, "Version increment strategy"},
		{`testflight_enhanced="true|false"`, "Enhanced TestFlight confirmation"},
		{`p12_password="password"`, "P12 certificate password"},
		{`apple_info_dir="/custom/path"`, "Custom apple_info location"},
	},
}

// IOSDeploy is the older "ios-deploy" package (ios-deploy-platform).
// Its deploy script expects to be started from the install directory.
var IOSDeploy = Product{
	Binary:        "ios-deploy",
	DisplayName:   "iOS FastLane Auto Deploy",
	Version:       "2.3.0",
	Summary:       "Enterprise-grade iOS TestFlight automation platform",
	Tagline:       "Built with ❤️  for iOS developers",
	Homepage:      "https://github.com/snooky23/ios-deploy-platform",
	ExampleTeamID: "NA5574MSN5",
	Required: []Param{
		{`team_id="XXXXXXXXXX"`, "Apple Developer Team ID"},
		{`app_identifier="com.company.app"`, "Bundle identifier"},
		{`apple_id="dev@email.com"`, "Apple Developer email"},
		{`api_key_id="YOUR_KEY_ID"`, "App Store Connect API Key ID"},
		{`api_issuer_id="your-issuer-uuid"`, "API Issuer ID"},
		{`app_name="Your App"`, "Display name"},
		{`scheme="YourScheme"`, "Xcode scheme"},
	},
	Optional: []Param{
		{`api_key_path="AuthKey_XXX.p8"`, "API key filename (auto-detected)"},
		{`apple_info_dir="/custom/path"`, "Apple info base directory"},
		{`version_bump="patch|minor|major|auto|sync"`, "Version increment strategy"},
		{`testflight_enhanced="true|false"`, "Enhanced TestFlight confirmation"},
		{`p12_password="password"`, "P12 certificate password"},
	},
	RunFromInstallDir: true,
}

// Banner returns the first line of the version output,
// e.g. "Apple Deploy v2.12.6".
func (p Product) Banner() string {
	return p.DisplayName + " v" + p.Version
}
