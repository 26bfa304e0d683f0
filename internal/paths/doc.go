// Provides platform-appropriate paths for the application.
//
// All paths follow XDG conventions on Linux and platform-native conventions
// on macOS and Windows. The application name "gradus" is used as the
// subdirectory under each base path.
package paths
