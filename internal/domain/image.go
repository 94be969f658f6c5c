package domain

// Image содержит ссылки на изображения товара под разные размеры экрана.
type Image struct {
	Thumbnail string
	Mobile    string
	Tablet    string
	Desktop   string
}

func NewImage(thumbnail, mobile, tablet, desktop string) Image {
	return Image{
		Thumbnail: thumbnail,
		Mobile:    mobile,
		Tablet:    tablet,
		Desktop:   desktop,
	}
}
