package constant

// AsciiArtLogo is the application's banner shown in the root command help.
const AsciiArtLogo = `
  ___  ___  _ __ __ _ _ __ ___   ___   __| |
 / __|/ _ \| '__/ _' | '_ ' _ \ / _ \ / _' |
 \__ \ (_) | | | (_| | | | | | | (_) | (_| |
 |___/\___/|_|  \__,_|_| |_| |_|\___/ \__,_|`
