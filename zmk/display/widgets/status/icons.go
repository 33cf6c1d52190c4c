package status

import (
	"image/color"

	"lpmview/zmk/display/canvas"
)

// Icons are parsed with a placeholder palette; painters substitute the
// widget colors through recolor.

var boltIcon = canvas.MustParseImage(`
       ....
      ..##.
     ..##..
    ..###. 
   ..###.. 
  ..###..  
 ..###.....
..########.
.########..
.....###.. 
  ..###..  
  .###..   
 ..##..    
 .##..     
..#..      
.#..       
...        
           
`, placeholder)

var usbIcon = canvas.MustParseImage(`
          ##  
     #   #  # 
    # #   ##  
   #   #      
##############
          #   
           ###
           ###
`, placeholder)

var connectedIcon = canvas.MustParseImage(`
  #######  
 ##     ## 
##  ###  ##
   #   #   
  #  #  #  
    # #    
     #     
    ###    
`, placeholder)

var disconnectedIcon = canvas.MustParseImage(`
##     ##
 ##   ## 
  ## ##  
   ###   
  ## ##  
 ##   ## 
##     ##
`, placeholder)

var openIcon = canvas.MustParseImage(`
 # # # # 
 ####### 
 ##...## 
###...###
 ##...## 
 ####### 
   # #   
`, placeholder)

var placeholder = [2]color.RGBA{canvas.Black, canvas.White}

// recolor returns a view of img drawn with bg for index 0 and fg for index 1.
func recolor(img *canvas.Image, bg, fg color.RGBA) *canvas.Image {
	v := *img
	v.Palette = [2]color.RGBA{bg, fg}
	return &v
}
