// Package project inspects and prepares the iOS project directory the
// dispatcher is run from.
//
// Detection only looks at the immediate directory for an Xcode project or
// workspace marker; nested projects are deliberately not found. Scaffolding
// creates the apple_info/ tree that the deploy script reads credentials,
// certificates and provisioning profiles from.
package project
