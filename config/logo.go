package config

// DefaultLogo is the built-in sign, one glyph per piece, bottom line is the ground row
const DefaultLogo = `
  /--
  V  )  +---     ^    &  /|           
     )  |   )  /  &   )&/ )          
  /--   +---   +---+  | V |        
 /      |   )  |   |  |   |         
 -----  +---   -   -  -   -
`
