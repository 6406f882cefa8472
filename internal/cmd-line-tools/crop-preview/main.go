// Licensed to NASA JPL under one or more contributor
// license agreements. See the NOTICE file distributed with
// this work for additional information regarding copyright
// ownership. NASA JPL licenses this file to you under
// the Apache License, Version 2.0 (the "License"); you may
// not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing,
// software distributed under the License is distributed on an
// "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY
// KIND, either express or implied.  See the License for the
// specific language governing permissions and limitations
// under the License.

// Renders a single satellite crop for a given pose to a PNG so output can be
// eyeballed without running a whole pipeline. Reads the base image either
// from a local directory or an S3 bucket.
package main

import (
	"flag"
	"log"

	"github.com/disintegration/imaging"
	"github.com/golang/geo/r2"
	"github.com/golang/geo/r3"

	"github.com/satraster/core/core/awsutil"
	"github.com/satraster/core/core/fileaccess"
	"github.com/satraster/core/core/geom"
	"github.com/satraster/core/core/logger"
	"github.com/satraster/core/core/raster"
	"github.com/satraster/core/core/satimage"
)

var imageKey string
var localRoot string
var dataBucket string
var rasterWidth int
var rasterHeight int
var pixelSize float64
var egoCenterX float64
var egoCenterY float64
var poseX float64
var poseY float64
var poseZ float64
var poseYaw float64
var outPath string

func main() {
	flag.StringVar(&imageKey, "imageKey", "", "Key of the satellite base image, eg maps/area.png. Metadata sidecar is the same key with a .json extension")
	flag.StringVar(&localRoot, "localRoot", "", "Local directory to read the base image from")
	flag.StringVar(&dataBucket, "dataBucket", "", "S3 bucket to read the base image from (used when localRoot is empty)")
	flag.IntVar(&rasterWidth, "rasterWidth", 224, "Output crop width in pixels")
	flag.IntVar(&rasterHeight, "rasterHeight", 224, "Output crop height in pixels")
	flag.Float64Var(&pixelSize, "pixelSize", 0.5, "Meters per output pixel")
	flag.Float64Var(&egoCenterX, "egoCenterX", 0.25, "Normalized x position of the pose in the crop")
	flag.Float64Var(&egoCenterY, "egoCenterY", 0.5, "Normalized y position of the pose in the crop")
	flag.Float64Var(&poseX, "x", 0, "Pose x, world meters")
	flag.Float64Var(&poseY, "y", 0, "Pose y, world meters")
	flag.Float64Var(&poseZ, "z", 0, "Pose elevation, world meters")
	flag.Float64Var(&poseYaw, "yaw", 0, "Pose heading, radians CCW")
	flag.StringVar(&outPath, "out", "crop-preview.png", "Output PNG path")

	flag.Parse()

	if len(imageKey) <= 0 {
		log.Fatal("Parameter: imageKey was empty")
	}
	if len(localRoot) <= 0 && len(dataBucket) <= 0 {
		log.Fatal("One of localRoot or dataBucket must be set")
	}

	iLog := &logger.StdOutLogger{}
	iLog.SetLogLevel(logger.LogInfo)

	var fs fileaccess.FileAccess
	bucket := dataBucket

	if len(localRoot) > 0 {
		fs = &fileaccess.FSAccess{}
		bucket = localRoot
	} else {
		sess, err := awsutil.GetSession()
		if err != nil {
			log.Fatalf("Failed to create AWS session. Error: %v", err)
		}
		s3svc, err := awsutil.GetS3(sess)
		if err != nil {
			log.Fatalf("Failed to create AWS S3 service. Error: %v", err)
		}
		remoteFS := fileaccess.MakeS3Access(s3svc)
		fs = remoteFS
	}

	iLog.Infof("Loading base image %v...", imageKey)

	mapImage, meta, err := satimage.LoadImageAndMetadata(fs, bucket, imageKey)
	if err != nil {
		log.Fatalf("Failed to load base image: %v", err)
	}

	mapToSat, err := meta.MapToSatMatrix()
	if err != nil {
		log.Fatalf("Bad calibration in metadata sidecar: %v", err)
	}

	if len(meta.YawConvention) > 0 && meta.YawConvention != satimage.YawConventionWorld {
		iLog.Errorf("Base image declares yaw convention %v, crops will be skewed (expected %v)", meta.YawConvention, satimage.YawConventionWorld)
	}

	rasterizer := raster.MakeSatelliteRasterizer(
		rasterWidth,
		rasterHeight,
		r2.Point{X: pixelSize, Y: pixelSize},
		r2.Point{X: egoCenterX, Y: egoCenterY},
		mapImage,
		mapToSat,
		nil,
	)

	history := []raster.Frame{
		{
			EgoTranslation: r3.Vector{X: poseX, Y: poseY, Z: poseZ},
			EgoRotation:    geom.RotationFromYaw(poseYaw),
		},
	}

	crop, err := rasterizer.Rasterize(history, nil, nil)
	if err != nil {
		log.Fatalf("Rasterize failed: %v", err)
	}

	err = imaging.Save(rasterizer.ToRGB(crop), outPath)
	if err != nil {
		log.Fatalf("Failed to write %v: %v", outPath, err)
	}

	iLog.Infof("Wrote %v", outPath)
}
